package query

import (
	"context"
	"strings"
	"time"

	"github.com/ignite/delivery-monitor/internal/domain"
)

// Join clauses emitted by the compiler. The repository prepends them to its
// base SELECT; they reference the canonical table names only.
const (
	JoinAddresses = "JOIN addresses ON addresses.id = deliveries.address_id"
	JoinEmails    = "JOIN emails ON emails.id = deliveries.email_id"
	JoinMeta      = "JOIN meta_values ON meta_values.email_id = deliveries.email_id"
)

// OrderNewestFirst is the default delivery ordering: creation time
// descending with id descending as a stable tie-break, so pagination is
// deterministic even when timestamps collide.
const OrderNewestFirst = "deliveries.created_at DESC, deliveries.id DESC"

// AddressResolver looks up an address row by its normalized text. Lookup
// only: the read path must never create address rows on a miss.
type AddressResolver interface {
	LookupAddress(ctx context.Context, text string) (int64, bool, error)
}

// DeliveryFilter holds the recognized optional filter keys. Nil keys impose
// no constraint.
type DeliveryFilter struct {
	AppID     *int64
	Status    *domain.DeliveryStatus
	Since     *time.Time
	From      *string
	To        *string
	MetaKey   *string
	MetaValue *string
	Search    *string
}

// CompiledDelivery is the conjunction of all present filter keys, plus the
// joins they need and the result ordering. It is not yet scoped or windowed.
type CompiledDelivery struct {
	Joins   []string
	Where   []Predicate
	OrderBy string
}

// Predicate returns the single conjoined filter predicate.
func (c CompiledDelivery) Predicate() Predicate { return Conjoin(c.Where...) }

func (c *CompiledDelivery) addJoin(clause string) {
	for _, j := range c.Joins {
		if j == clause {
			return
		}
	}
	c.Joins = append(c.Joins, clause)
}

// NormalizeAddress lowercases and trims address text the same way the
// addresses table stores it.
func NormalizeAddress(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CompileDelivery translates a filter set into one combined predicate.
//
// When Search is present it is applied standalone against the recipient
// address text and every other key is ignored; that branch mirrors the
// listing page's search box, which has always behaved this way. Otherwise
// present keys narrow conjunctively. A from/to filter whose address text has
// no row degrades to a predicate matching nothing.
func CompileDelivery(ctx context.Context, f DeliveryFilter, addrs AddressResolver) (CompiledDelivery, error) {
	c := CompiledDelivery{OrderBy: OrderNewestFirst}

	if f.Search != nil {
		c.addJoin(JoinAddresses)
		c.Where = append(c.Where, Predicate{
			Expr: "addresses.text = ?",
			Args: []any{NormalizeAddress(*f.Search)},
		})
		return c, nil
	}

	if f.AppID != nil {
		// Both the denormalized delivery column and the email's app must
		// match, guarding against inconsistent foreign keys.
		c.addJoin(JoinEmails)
		c.Where = append(c.Where,
			Predicate{Expr: "deliveries.app_id = ?", Args: []any{*f.AppID}},
			Predicate{Expr: "emails.app_id = ?", Args: []any{*f.AppID}},
		)
	}
	if f.Status != nil {
		c.Where = append(c.Where, Predicate{
			Expr: "deliveries.status = ?",
			Args: []any{string(*f.Status)},
		})
	}
	if f.Since != nil {
		c.Where = append(c.Where, Predicate{
			Expr: "deliveries.created_at > ?",
			Args: []any{*f.Since},
		})
	}
	if f.From != nil {
		id, ok, err := addrs.LookupAddress(ctx, NormalizeAddress(*f.From))
		if err != nil {
			return CompiledDelivery{}, err
		}
		if !ok {
			c.Where = append(c.Where, Never())
		} else {
			c.addJoin(JoinEmails)
			c.Where = append(c.Where, Predicate{
				Expr: "emails.from_address_id = ?",
				Args: []any{id},
			})
		}
	}
	if f.To != nil {
		id, ok, err := addrs.LookupAddress(ctx, NormalizeAddress(*f.To))
		if err != nil {
			return CompiledDelivery{}, err
		}
		if !ok {
			c.Where = append(c.Where, Never())
		} else {
			c.Where = append(c.Where, Predicate{
				Expr: "deliveries.address_id = ?",
				Args: []any{id},
			})
		}
	}
	if f.MetaKey != nil {
		c.addJoin(JoinMeta)
		c.Where = append(c.Where, Predicate{
			Expr: "meta_values.key = ?",
			Args: []any{*f.MetaKey},
		})
	}
	if f.MetaValue != nil {
		c.addJoin(JoinMeta)
		c.Where = append(c.Where, Predicate{
			Expr: "meta_values.value = ?",
			Args: []any{*f.MetaValue},
		})
	}

	return c, nil
}
