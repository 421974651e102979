//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package hotelbooking

// PersonName is a structured first/last name pair.
type PersonName struct {
	First string `json:"first" jsonschema:"description=Given name"`
	Last  string `json:"last" jsonschema:"description=Family name"`
}

// Guest is one occupant of a room. Age is only meaningful for children.
type Guest struct {
	Name    PersonName `json:"name" jsonschema:"description=Guest name"`
	IsAdult bool       `json:"is_adult" jsonschema:"description=Whether the guest is an adult"`
	Age     int        `json:"age,omitempty" jsonschema:"description=Child age, required when is_adult is false"`
	Gender  string     `json:"gender,omitempty" jsonschema:"description=Optional gender, M or F"`
}

// RoomGuests groups guests by room number.
type RoomGuests struct {
	RoomNum   int     `json:"room_num" jsonschema:"description=Room number, starting at 1"`
	GuestInfo []Guest `json:"guest_info" jsonschema:"description=Guests staying in this room"`
}

// Contact is the booking contact. All three fields are mandatory for
// booking confirmation.
type Contact struct {
	Name  *PersonName `json:"name,omitempty" jsonschema:"description=Contact name"`
	Email string      `json:"email,omitempty" jsonschema:"description=Contact email address"`
	Phone string      `json:"phone,omitempty" jsonschema:"description=Contact phone number"`
}

// ----- provider request schema -----

type providerName struct {
	First string `json:"First"`
	Last  string `json:"Last"`
}

type providerGuest struct {
	Name    providerName `json:"Name"`
	IsAdult bool         `json:"IsAdult"`
	Age     *int         `json:"Age,omitempty"`
	Gender  string       `json:"Gender,omitempty"`
}

type providerRoom struct {
	RoomNum   int             `json:"RoomNum"`
	GuestInfo []providerGuest `json:"GuestInfo"`
}

type providerContact struct {
	Name  providerName `json:"Name"`
	Email string       `json:"Email"`
	Phone string       `json:"Phone"`
}

// mapGuestList converts the caller-facing room/guest records into the
// provider's nested schema. Age is forwarded only for children, gender only
// when the endpoint accepts it.
func mapGuestList(rooms []RoomGuests, includeGender bool) []providerRoom {
	mapped := make([]providerRoom, 0, len(rooms))
	for _, room := range rooms {
		roomNum := room.RoomNum
		if roomNum == 0 {
			roomNum = 1
		}
		guests := make([]providerGuest, 0, len(room.GuestInfo))
		for _, guest := range room.GuestInfo {
			mapped2 := providerGuest{
				Name: providerName{
					First: guest.Name.First,
					Last:  guest.Name.Last,
				},
				IsAdult: guest.IsAdult,
			}
			if !guest.IsAdult && guest.Age > 0 {
				age := guest.Age
				mapped2.Age = &age
			}
			if includeGender && guest.Gender != "" {
				mapped2.Gender = guest.Gender
			}
			guests = append(guests, mapped2)
		}
		mapped = append(mapped, providerRoom{RoomNum: roomNum, GuestInfo: guests})
	}
	return mapped
}

func mapContact(contact Contact) providerContact {
	mapped := providerContact{
		Email: contact.Email,
		Phone: contact.Phone,
	}
	if contact.Name != nil {
		mapped.Name = providerName{
			First: contact.Name.First,
			Last:  contact.Name.Last,
		}
	}
	return mapped
}
