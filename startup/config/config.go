package config

import "os"

type Config struct {
	Port          string
	HotelDBHost   string
	HotelDBPort   string
	JaegerAddress string
	SeedRooms     bool
}

func NewConfig() *Config {
	return &Config{
		Port:          os.Getenv("HOTEL_SERVICE_PORT"),
		HotelDBHost:   os.Getenv("HOTEL_DB_HOST"),
		HotelDBPort:   os.Getenv("HOTEL_DB_PORT"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		SeedRooms:     os.Getenv("SEED_ROOMS") == "true",
	}
}
