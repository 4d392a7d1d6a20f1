package booking

import (
	"errors"
	"strings"
)

type Guest struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

func NewGuest(firstName, lastName, email, phone string) (Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" {
		return Guest{}, errors.New("guest name cannot be empty")
	}
	return Guest{
		firstName: firstName,
		lastName:  lastName,
		email:     strings.TrimSpace(email),
		phone:     strings.TrimSpace(phone),
	}, nil
}

// ReconstructGuest rebuilds a guest from persisted state without the
// intake validation.
func ReconstructGuest(firstName, lastName, email, phone string) Guest {
	return Guest{firstName: firstName, lastName: lastName, email: email, phone: phone}
}

func (g Guest) FirstName() string { return g.firstName }
func (g Guest) LastName() string  { return g.lastName }
func (g Guest) Email() string     { return g.email }
func (g Guest) Phone() string     { return g.phone }

func (g Guest) FullName() string {
	return strings.TrimSpace(g.firstName + " " + g.lastName)
}

// RoomOccupancy carries the occupant count of one room on a booking.
type RoomOccupancy struct {
	Pax int
}

// TotalGuests sums per-room occupancy across a booking's rooms.
func TotalGuests(rooms []RoomOccupancy) int {
	total := 0
	for _, r := range rooms {
		total += r.Pax
	}
	return total
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOnline   PaymentMethod = "ONLINE"
)
