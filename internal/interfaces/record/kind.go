// Package record
package record

import (
	"sort"
	"strconv"
)

type OrderRule int

const (
	// ByNewest orders by stamped time, most recent first.
	ByNewest OrderRule = iota
	// ByFlightStatus orders by the live-flight status rank, then keeps
	// insertion order within a rank.
	ByFlightStatus
	// ByExplicitOrder orders by the numeric "order" field ascending;
	// records without one sort after all records that have one.
	ByExplicitOrder
)

// Kind describes one of the seven record collections: where it lives,
// which fields a valid record must carry and how its list is displayed.
// Enums constrains named fields to a fixed value set.
type Kind struct {
	Name           string
	Display        string
	Collection     string
	Required       []string
	Optional       []string
	Enums          map[string][]string
	Order          OrderRule
	CreatedMessage string
}

const missingOrderRank = 99

// Rank of a live-flight status for display ordering. Statuses outside
// the map (including Delayed) fall to the bottom, same as the original
// site behaved.
var flightStatusRank = map[string]int{
	"En Route":  1,
	"Departed":  2,
	"Scheduled": 3,
	"Arrived":   4,
	"Cancelled": 5,
}

// FlightStatuses are the accepted values of a live flight's status field.
var FlightStatuses = []string{"Scheduled", "Departed", "En Route", "Arrived", "Cancelled", "Delayed"}

func explicitOrder(r *Record) int {
	value, ok := r.Fields["order"]
	if !ok || value == "" {
		return missingOrderRank
	}
	order, err := strconv.Atoi(value)
	if err != nil {
		return missingOrderRank
	}
	return order
}

// SortRecords applies the kind's display order in place. Sorting is
// stable over the store's insertion order, so the result is a pure
// function of the snapshot content.
func (kind *Kind) SortRecords(records []Record) {
	switch kind.Order {
	case ByFlightStatus:
		sort.SliceStable(records, func(i, j int) bool {
			ri, ok := flightStatusRank[records[i].Fields["status"]]
			if !ok {
				ri = missingOrderRank
			}
			rj, ok := flightStatusRank[records[j].Fields["status"]]
			if !ok {
				rj = missingOrderRank
			}
			return ri < rj
		})
	case ByExplicitOrder:
		sort.SliceStable(records, func(i, j int) bool {
			return explicitOrder(&records[i]) < explicitOrder(&records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp)
		})
	}
}

var (
	Announcements = Kind{
		Name:           "announcement",
		Display:        "Announcement",
		Collection:     "announcements",
		Required:       []string{"title", "message"},
		Optional:       []string{"imageUrl"},
		Order:          ByNewest,
		CreatedMessage: "Announcement added successfully!",
	}
	LiveFlights = Kind{
		Name:           "liveFlight",
		Display:        "Live flight",
		Collection:     "liveFlights",
		Required:       []string{"flight", "origin", "destination", "status"},
		Optional:       []string{"eta"},
		Enums:          map[string][]string{"status": FlightStatuses},
		Order:          ByFlightStatus,
		CreatedMessage: "Live flight added successfully!",
	}
	Photos = Kind{
		Name:           "photo",
		Display:        "Photo",
		Collection:     "photos",
		Required:       []string{"src", "title", "description"},
		Order:          ByNewest,
		CreatedMessage: "Photo added successfully!",
	}
	BookingRequests = Kind{
		Name:           "bookingRequest",
		Display:        "Booking request",
		Collection:     "bookingRequests",
		Required:       []string{"discordUser", "robloxUser", "from", "to", "date"},
		Order:          ByNewest,
		CreatedMessage: "Your booking request has been sent! We will contact you via Discord.",
	}
	SupportRequests = Kind{
		Name:           "supportRequest",
		Display:        "Support request",
		Collection:     "supportRequests",
		Required:       []string{"discordUser", "robloxUser", "subject", "message"},
		Order:          ByNewest,
		CreatedMessage: "Your support request has been sent! Our team will contact you via Discord.",
	}
	StaffTeam = Kind{
		Name:           "staffMember",
		Display:        "Staff member",
		Collection:     "staffTeam",
		Required:       []string{"name", "role"},
		Optional:       []string{"imageUrl", "order"},
		Order:          ByExplicitOrder,
		CreatedMessage: "Staff member added successfully!",
	}
	Fleet = Kind{
		Name:           "aircraft",
		Display:        "Aircraft",
		Collection:     "fleet",
		Required:       []string{"type", "description"},
		Optional:       []string{"imageUrl", "order"},
		Order:          ByExplicitOrder,
		CreatedMessage: "Aircraft added successfully!",
	}
)

var kinds = []*Kind{
	&Announcements,
	&LiveFlights,
	&Photos,
	&BookingRequests,
	&SupportRequests,
	&StaffTeam,
	&Fleet,
}

func Kinds() []*Kind {
	return kinds
}

// KindByCollection resolves a collection path to its kind descriptor.
func KindByCollection(collection string) (*Kind, bool) {
	for _, kind := range kinds {
		if kind.Collection == collection {
			return kind, true
		}
	}
	return nil, false
}
