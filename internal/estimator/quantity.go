package estimator

import "github.com/alexanderramin/buildcost/internal/domain"

// fixtureDensity is the number of plumbing-style fixtures assumed per room
// type when pricing a per-fixture trade inside a room.
var fixtureDensity = map[domain.RoomType]float64{
	domain.RoomPrimaryBath:    6,
	domain.RoomSecondaryBath:  4,
	domain.RoomPowderRoom:     2,
	domain.RoomKitchen:        4,
	domain.RoomLaundry:        2,
	domain.RoomBedroom:        1,
	domain.RoomPrimaryBedroom: 1,
}

const defaultFixtureDensity = 1

// kitchenFixtures assumes every project has exactly one kitchen.
const kitchenFixtures = 4

func roomFixtures(t domain.RoomType) float64 {
	if d, ok := fixtureDensity[t]; ok {
		return d
	}
	return defaultFixtureDensity
}

// countGroup names the project count that describes rooms of type t, or ""
// when no count applies. Both bedroom types share bedroom_count.
func countGroup(t domain.RoomType) string {
	switch t {
	case domain.RoomPrimaryBath:
		return "primary_bath"
	case domain.RoomSecondaryBath:
		return "secondary_bath"
	case domain.RoomPowderRoom:
		return "powder_room"
	case domain.RoomBedroom, domain.RoomPrimaryBedroom:
		return "bedroom"
	default:
		return ""
	}
}

func projectCount(p *domain.Project, group string) int {
	switch group {
	case "primary_bath":
		return p.PrimaryBathCount
	case "secondary_bath":
		return p.SecondaryBathCount
	case "powder_room":
		return p.PowderRoomCount
	case "bedroom":
		return p.BedroomCount
	default:
		return 0
	}
}

// roomShare is the part of the project count that room stands for: the count
// split evenly over the rooms of its group. A count of zero means the project
// did not say, and the room counts as one.
func roomShare(p *domain.Project, room *domain.Room) float64 {
	group := countGroup(room.Type)
	count := projectCount(p, group)
	if group == "" || count <= 0 {
		return 1
	}
	rooms := 0
	for _, r := range p.Rooms {
		if r != nil && countGroup(r.Type) == group {
			rooms++
		}
	}
	return float64(count) / float64(max(rooms, 1))
}

// projectFixtures derives a whole-project fixture count from the declared
// bath and bedroom counts.
func projectFixtures(p *domain.Project) float64 {
	return float64(p.PrimaryBathCount)*fixtureDensity[domain.RoomPrimaryBath] +
		float64(p.SecondaryBathCount)*fixtureDensity[domain.RoomSecondaryBath] +
		float64(p.PowderRoomCount)*fixtureDensity[domain.RoomPowderRoom] +
		float64(p.BedroomCount)*fixtureDensity[domain.RoomBedroom] +
		kitchenFixtures
}

// RoomQuantity returns the priced quantity of a trade with the given unit
// basis inside room. Per-fixture trades in bath, powder-room and bedroom
// rooms scale with the matching count on p, so the rooms of one type
// together price that count's fixtures.
func RoomQuantity(basis domain.UnitBasis, p *domain.Project, room *domain.Room) float64 {
	switch basis {
	case domain.BasisPerSqft:
		return room.SquareFootage
	case domain.BasisPerFixture:
		return roomFixtures(room.Type) * roomShare(p, room)
	default:
		return 1
	}
}

// GeneralQuantity returns the priced quantity of a trade with no owning room.
func GeneralQuantity(basis domain.UnitBasis, p *domain.Project) float64 {
	switch basis {
	case domain.BasisPerSqft:
		return p.SquareFootage
	case domain.BasisPerFixture:
		return projectFixtures(p)
	default:
		return 1
	}
}
