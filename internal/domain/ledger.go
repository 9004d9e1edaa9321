package domain

import "math/rand"

// Resource is one of the five producible resource kinds.
type Resource string

const (
	ResourceWood  Resource = "wood"
	ResourceBrick Resource = "brick"
	ResourceWool  Resource = "wool"
	ResourceGrain Resource = "grain"
	ResourceOre   Resource = "ore"
)

// ResourceKinds lists every resource in a stable order.
var ResourceKinds = []Resource{ResourceWood, ResourceBrick, ResourceWool, ResourceGrain, ResourceOre}

// Bundle maps resource kinds to non-negative counts. A missing key
// means zero. Operations that would drive a count below zero fail
// instead of clamping.
type Bundle map[Resource]int

// NewBundle returns an empty bundle.
func NewBundle() Bundle {
	return make(Bundle, len(ResourceKinds))
}

// Clone returns an independent copy of the bundle.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Total is the number of resource units across all kinds.
func (b Bundle) Total() int {
	sum := 0
	for _, v := range b {
		sum += v
	}
	return sum
}

// Add credits every named resource. Amounts are non-negative by
// construction of inbound payloads; Add always succeeds.
func (b Bundle) Add(other Bundle) {
	for k, v := range other {
		b[k] += v
	}
}

// Negative reports whether any count is below zero. Inbound bundles
// are checked with it before they touch the ledger; a negative entry
// would turn a deduct into a credit.
func (b Bundle) Negative() bool {
	for _, v := range b {
		if v < 0 {
			return true
		}
	}
	return false
}

// CanAfford reports whether every named amount in cost is covered.
func (b Bundle) CanAfford(cost Bundle) bool {
	for k, v := range cost {
		if b[k] < v {
			return false
		}
	}
	return true
}

// Deduct removes the cost from the bundle. The operation is atomic:
// when any kind is insufficient nothing is removed and a RuleError of
// kind insufficient_resources is returned.
func (b Bundle) Deduct(cost Bundle) error {
	for k, v := range cost {
		if b[k] < v {
			return NewRuleError(KindInsufficientResources, "need %d %s, have %d", v, k, b[k])
		}
	}
	for k, v := range cost {
		b[k] -= v
	}
	return nil
}

// Scale returns a new bundle with every amount multiplied by n.
func (b Bundle) Scale(n int) Bundle {
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v * n
	}
	return out
}

// DrawRandom removes one uniformly chosen resource unit, treating the
// bundle as a multiset of unit cards. Returns false on an empty bundle.
func (b Bundle) DrawRandom(rng *rand.Rand) (Resource, bool) {
	total := b.Total()
	if total == 0 {
		return "", false
	}
	pick := rng.Intn(total)
	for _, k := range ResourceKinds {
		if pick < b[k] {
			b[k]--
			return k, true
		}
		pick -= b[k]
	}
	return "", false
}
