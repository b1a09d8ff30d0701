package pool

// Descriptor is the persistent state of a single pool (spec.md §3): every
// field a caller can observe through read-only accessors, plus the
// operator-configurable deposit ceiling added in SPEC_FULL.md §4.7.
type Descriptor struct {
	Owner        Handle
	PendingOwner *Handle

	TokenIdentity Handle
	VaultHandle   Handle

	TreeDepth   int
	HistorySize int

	Paused bool

	VKConfigured bool
	VKLocked     bool

	DepositCount   uint64
	RedemptionCount uint64

	CumulativeDeposited uint64
	CumulativeRedeemed  uint64

	// MaxDeposit bounds a single Append's amount; zero means unbounded.
	// Owner-configurable via SetMaxDeposit (SPEC_FULL.md §4.7).
	MaxDeposit uint64

	SchemaVersion uint32
}

const currentSchemaVersion = 1
