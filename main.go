package main

import (
	"hotel_service/startup"
	"hotel_service/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
