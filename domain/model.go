package domain

import (
	"encoding/json"
	"io"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomNumber  string             `bson:"roomNumber" json:"roomNumber"`
	Type        RoomType           `bson:"type" json:"type"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	MaxGuests   int                `bson:"maxGuests" json:"maxGuests"`
	Available   bool               `bson:"available" json:"available"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type RoomType string

const (
	Single RoomType = "single"
	Double RoomType = "double"
	Suite  RoomType = "suite"
	Deluxe RoomType = "deluxe"
)

func (t RoomType) Valid() bool {
	switch t {
	case Single, Double, Suite, Deluxe:
		return true
	}
	return false
}

type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuestName       string             `bson:"guestName" json:"guestName"`
	GuestEmail      string             `bson:"guestEmail" json:"guestEmail"`
	GuestPhone      string             `bson:"guestPhone" json:"guestPhone"`
	RoomID          primitive.ObjectID `bson:"room" json:"roomId"`
	Room            *Room              `bson:"-" json:"room,omitempty"`
	CheckIn         time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut        time.Time          `bson:"checkOut" json:"checkOut"`
	NumberOfGuests  int                `bson:"numberOfGuests" json:"numberOfGuests"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Status          ReservationStatus  `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	SpecialRequests string             `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status counts toward
// date conflicts. Cancelled and completed reservations never block.
func (s ReservationStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// ReservationRequest is the POST /reservations payload. Dates accept
// either 2006-01-02 or RFC3339 timestamps.
type ReservationRequest struct {
	GuestName       string `json:"guestName" validate:"required,min=2,max=100"`
	GuestEmail      string `json:"guestEmail" validate:"required,email"`
	GuestPhone      string `json:"guestPhone" validate:"required,phone"`
	RoomID          string `json:"roomId" validate:"required"`
	CheckIn         string `json:"checkIn" validate:"required"`
	CheckOut        string `json:"checkOut" validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests"`
}

func (r *ReservationRequest) Validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("phone", phoneField)
	if err != nil {
		return err
	}

	return validate.Struct(r)
}

// Allows digits, spaces and the usual phone punctuation
func phoneField(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
	return re.MatchString(fl.Field().String())
}

const dateLayout = "2006-01-02"

// ParseDate accepts a plain calendar date or a full RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type StatusUpdate struct {
	Status ReservationStatus `json:"status"`
}

type PaymentUpdate struct {
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

type Stats struct {
	TotalRooms            int64   `json:"totalRooms"`
	AvailableRooms        int64   `json:"availableRooms"`
	TotalReservations     int64   `json:"totalReservations"`
	PendingReservations   int64   `json:"pendingReservations"`
	ConfirmedReservations int64   `json:"confirmedReservations"`
	TotalRevenue          float64 `json:"totalRevenue"`
}

func (r *ReservationRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(r)
}

func (o *Reservation) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Room) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
