package importer

import (
	"sort"
	"strings"

	"github.com/alexanderramin/buildcost/internal/domain"
)

// Convert transforms a validated ProjectDocument into a domain project.
// Call ValidateProjectDocument first; Convert assumes the shape is valid.
// Tier names are normalized but not checked.
func Convert(doc *ProjectDocument) *domain.Project {
	p := &domain.Project{
		Name:               doc.ProjectName,
		GlobalTier:         NormalizeTier(domain.CoalesceStr(deref(doc.GlobalTier), deref(doc.Tier))),
		BedroomCount:       domain.FirstSet(0, doc.BedroomCount),
		PrimaryBathCount:   domain.FirstSet(0, doc.PrimaryBathCount),
		SecondaryBathCount: domain.FirstSet(0, doc.SecondaryBathCount),
		PowderRoomCount:    domain.FirstSet(0, doc.PowderRoomCount),
	}
	if doc.SquareFootage != nil {
		p.SquareFootage = *doc.SquareFootage
	}

	if len(doc.Trades) > 0 {
		p.Trades = make(map[domain.Trade]domain.Tier, len(doc.Trades))
		for name, tier := range doc.Trades {
			p.Trades[domain.Trade(name)] = NormalizeTier(deref(tier))
		}
	}

	if len(doc.Rooms) > 0 {
		p.Rooms = make(map[string]*domain.Room, len(doc.Rooms))
		for id, rd := range doc.Rooms {
			room := &domain.Room{
				Name: rd.Name,
				Type: domain.RoomType(rd.Type),
				Tier: normalizedTierPtr(rd.Tier),
			}
			if rd.SquareFootage != nil {
				room.SquareFootage = *rd.SquareFootage
			}
			if len(rd.Trades) > 0 {
				room.Trades = make(map[domain.Trade]domain.RoomTrade, len(rd.Trades))
				for name, rt := range rd.Trades {
					room.Trades[domain.Trade(name)] = domain.RoomTrade{Tier: normalizedTierPtr(rt.Tier)}
				}
			}
			p.Rooms[id] = room
		}
	}
	return p
}

// FromProject renders a domain project back into its document form.
func FromProject(p *domain.Project) *ProjectDocument {
	sqft := p.SquareFootage
	doc := &ProjectDocument{
		ProjectName:        p.Name,
		SquareFootage:      &sqft,
		GlobalTier:         tierString(domain.TierPtr(p.GlobalTier)),
		BedroomCount:       intPtr(p.BedroomCount),
		PrimaryBathCount:   intPtr(p.PrimaryBathCount),
		SecondaryBathCount: intPtr(p.SecondaryBathCount),
		PowderRoomCount:    intPtr(p.PowderRoomCount),
	}
	if len(p.Trades) > 0 {
		doc.Trades = make(map[string]*string, len(p.Trades))
		for trade, tier := range p.Trades {
			doc.Trades[string(trade)] = tierString(domain.TierPtr(tier))
		}
	}
	if len(p.Rooms) > 0 {
		doc.Rooms = make(map[string]RoomDocument, len(p.Rooms))
		for id, room := range p.Rooms {
			if room == nil {
				continue
			}
			rsqft := room.SquareFootage
			rd := RoomDocument{
				Name:          room.Name,
				Type:          string(room.Type),
				SquareFootage: &rsqft,
				Tier:          tierString(room.Tier),
			}
			if len(room.Trades) > 0 {
				rd.Trades = make(map[string]RoomTradeDocument, len(room.Trades))
				for trade, rt := range room.Trades {
					rd.Trades[string(trade)] = RoomTradeDocument{Tier: tierString(rt.Tier)}
				}
			}
			doc.Rooms[id] = rd
		}
	}
	return doc
}

var tierAliases = map[string]domain.Tier{
	"premium":      domain.TierPremium,
	"luxury":       domain.TierLuxury,
	"ultra-luxury": domain.TierUltraLuxury,
	"ultraluxury":  domain.TierUltraLuxury,
}

// NormalizeTier maps case and separator variants ("ultra_luxury",
// "Ultra Luxury") to the canonical tier name. Unrecognized names are returned
// trimmed so the validator can report them verbatim.
func NormalizeTier(s string) domain.Tier {
	s = strings.TrimSpace(s)
	key := strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(s))
	if t, ok := tierAliases[key]; ok {
		return t
	}
	return domain.Tier(s)
}

func normalizedTierPtr(s *string) *domain.Tier {
	if s == nil {
		return nil
	}
	return domain.TierPtr(NormalizeTier(*s))
}

func tierString(t *domain.Tier) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
