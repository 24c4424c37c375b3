package merge

import (
	"media_syncer/internal/domain"
)

// Credit refreshes existing with the non-blank fields of incoming. The
// identifier, the content linkage and the denormalized content copy never
// change after the first insert.
func Credit(existing *domain.Credit, incoming domain.Credit) domain.Credit {
	if existing == nil {
		return incoming
	}

	merged := *existing
	if incoming.PersonID != nil {
		id := *incoming.PersonID
		merged.PersonID = &id
	}
	merged.PersonName = pickString(incoming.PersonName, existing.PersonName)
	merged.Character = pickString(incoming.Character, existing.Character)
	merged.Department = pickString(incoming.Department, existing.Department)
	merged.Job = pickString(incoming.Job, existing.Job)
	// A credit id belongs to the cast or the crew for good.
	merged.IsCrew = existing.IsCrew || incoming.IsCrew
	if incoming.Order != nil {
		order := *incoming.Order
		merged.Order = &order
	}

	return merged
}

func CreditChanged(existing, merged domain.Credit) bool {
	return !ptrEqual(existing.PersonID, merged.PersonID) ||
		existing.PersonName != merged.PersonName ||
		existing.Character != merged.Character ||
		existing.Department != merged.Department ||
		existing.Job != merged.Job ||
		existing.IsCrew != merged.IsCrew ||
		!ptrEqual(existing.Order, merged.Order)
}

// Trailer refreshes existing with the non-blank fields of incoming.
func Trailer(existing *domain.Trailer, incoming domain.Trailer) domain.Trailer {
	if existing == nil {
		return incoming
	}

	merged := *existing
	merged.Name = pickString(incoming.Name, existing.Name)
	merged.Key = pickString(incoming.Key, existing.Key)
	merged.Site = pickString(incoming.Site, existing.Site)
	merged.Type = pickString(incoming.Type, existing.Type)
	if incoming.Official != nil {
		official := *incoming.Official
		merged.Official = &official
	}
	if incoming.PublishedAt != nil {
		merged.PublishedAt = cloneTime(incoming.PublishedAt)
	}

	return merged
}

func TrailerChanged(existing, merged domain.Trailer) bool {
	return existing.Name != merged.Name ||
		existing.Key != merged.Key ||
		existing.Site != merged.Site ||
		existing.Type != merged.Type ||
		!ptrEqual(existing.Official, merged.Official) ||
		!timesEqual(existing.PublishedAt, merged.PublishedAt)
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
