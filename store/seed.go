package store

import (
	"context"

	"hotel_service/domain"
)

// SeedRooms inserts the sample room catalog when the store is empty.
// Administrative seeding is the only way rooms enter the system.
func SeedRooms(ctx context.Context, rooms domain.RoomStore) (int, error) {
	count, err := rooms.Count(ctx, false)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for i := range sampleRooms {
		if _, err := rooms.Insert(ctx, &sampleRooms[i]); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

var sampleRooms = []domain.Room{
	{
		RoomNumber:  "101",
		Type:        domain.Single,
		Price:       89.99,
		Description: "Comfortable single room with city view",
		Amenities:   []string{"Free WiFi", "TV", "Air Conditioning", "Work Desk"},
		MaxGuests:   1,
		Available:   true,
		Images:      []string{"room101-1.jpg", "room101-2.jpg"},
	},
	{
		RoomNumber:  "102",
		Type:        domain.Single,
		Price:       99.99,
		Description: "Deluxe single room with balcony",
		Amenities:   []string{"Free WiFi", "TV", "Air Conditioning", "Work Desk", "Balcony", "Mini Bar"},
		MaxGuests:   1,
		Available:   true,
		Images:      []string{"room102-1.jpg", "room102-2.jpg"},
	},
	{
		RoomNumber:  "201",
		Type:        domain.Double,
		Price:       149.99,
		Description: "Spacious double room perfect for couples",
		Amenities:   []string{"Free WiFi", "TV", "Air Conditioning", "King Size Bed", "Coffee Maker"},
		MaxGuests:   2,
		Available:   true,
		Images:      []string{"room201-1.jpg", "room201-2.jpg", "room201-3.jpg"},
	},
	{
		RoomNumber:  "202",
		Type:        domain.Double,
		Price:       169.99,
		Description: "Double room with garden view",
		Amenities:   []string{"Free WiFi", "TV", "Air Conditioning", "Queen Size Bed", "Coffee Maker", "Balcony"},
		MaxGuests:   2,
		Available:   true,
		Images:      []string{"room202-1.jpg", "room202-2.jpg"},
	},
	{
		RoomNumber:  "301",
		Type:        domain.Suite,
		Price:       249.99,
		Description: "Luxury suite with separate living area",
		Amenities:   []string{"Free WiFi", "Smart TV", "Air Conditioning", "King Size Bed", "Living Room", "Mini Bar", "Jacuzzi"},
		MaxGuests:   3,
		Available:   true,
		Images:      []string{"room301-1.jpg", "room301-2.jpg", "room301-3.jpg", "room301-4.jpg"},
	},
	{
		RoomNumber:  "302",
		Type:        domain.Suite,
		Price:       299.99,
		Description: "Executive suite with panoramic city views",
		Amenities:   []string{"Free WiFi", "Smart TV", "Air Conditioning", "King Size Bed", "Living Room", "Mini Bar", "Jacuzzi", "Balcony"},
		MaxGuests:   4,
		Available:   true,
		Images:      []string{"room302-1.jpg", "room302-2.jpg"},
	},
	{
		RoomNumber:  "401",
		Type:        domain.Deluxe,
		Price:       399.99,
		Description: "Presidential deluxe suite with premium amenities",
		Amenities:   []string{"Free WiFi", "Smart TV", "Air Conditioning", "California King Bed", "Living Room", "Dining Area", "Full Bar", "Jacuzzi", "Balcony", "Butler Service"},
		MaxGuests:   4,
		Available:   true,
		Images:      []string{"room401-1.jpg", "room401-2.jpg", "room401-3.jpg", "room401-4.jpg"},
	},
}
