package domain

import "sort"

type Tier string

const (
	TierPremium     Tier = "Premium"
	TierLuxury      Tier = "Luxury"
	TierUltraLuxury Tier = "Ultra-Luxury"
)

// StandardTiers lists the quality tiers in ascending order of cost.
var StandardTiers = []Tier{TierPremium, TierLuxury, TierUltraLuxury}

// ValidTiers is the canonical set of accepted tier names.
var ValidTiers = map[Tier]bool{
	TierPremium:     true,
	TierLuxury:      true,
	TierUltraLuxury: true,
}

func (t Tier) Valid() bool { return ValidTiers[t] }

// Trade names a construction discipline. The set of known trades is owned by
// the tier catalog, not by this package.
type Trade string

// SortedTrades returns the keys of m in ascending order.
func SortedTrades[V any](m map[Trade]V) []Trade {
	out := make([]Trade, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type RoomType string

const (
	RoomPrimaryBath    RoomType = "primary_bath"
	RoomSecondaryBath  RoomType = "secondary_bath"
	RoomPowderRoom     RoomType = "powder_room"
	RoomKitchen        RoomType = "kitchen"
	RoomBedroom        RoomType = "bedroom"
	RoomPrimaryBedroom RoomType = "primary_bedroom"
	RoomLivingRoom     RoomType = "living_room"
	RoomDiningRoom     RoomType = "dining_room"
	RoomFamilyRoom     RoomType = "family_room"
	RoomOffice         RoomType = "office"
	RoomLaundry        RoomType = "laundry"
	RoomGarage         RoomType = "garage"
	RoomBasement       RoomType = "basement"
	RoomOutdoor        RoomType = "outdoor"
	RoomOther          RoomType = "other"
)

// ValidRoomTypes is the canonical set of accepted room type strings.
var ValidRoomTypes = map[RoomType]bool{
	RoomPrimaryBath: true, RoomSecondaryBath: true, RoomPowderRoom: true,
	RoomKitchen: true, RoomBedroom: true, RoomPrimaryBedroom: true,
	RoomLivingRoom: true, RoomDiningRoom: true, RoomFamilyRoom: true,
	RoomOffice: true, RoomLaundry: true, RoomGarage: true,
	RoomBasement: true, RoomOutdoor: true, RoomOther: true,
}

func (r RoomType) Valid() bool { return ValidRoomTypes[r] }

type UnitBasis string

const (
	BasisPerSqft    UnitBasis = "per_sqft"
	BasisPerFixture UnitBasis = "per_fixture"
	BasisFlat       UnitBasis = "flat"
)

// ValidUnitBases is the canonical set of accepted unit basis strings.
var ValidUnitBases = map[UnitBasis]bool{
	BasisPerSqft:    true,
	BasisPerFixture: true,
	BasisFlat:       true,
}

func (u UnitBasis) Valid() bool { return ValidUnitBases[u] }

// Scope identifies which level of the override hierarchy supplied a tier.
type Scope string

const (
	ScopeRoomTrade    Scope = "room_trade"
	ScopeRoom         Scope = "room"
	ScopeProjectTrade Scope = "project_trade"
	ScopeGlobal       Scope = "global"
)

// GeneralRoomID is the pseudo-room that project-level trades without an
// owning room are attributed to.
const GeneralRoomID = "general"
