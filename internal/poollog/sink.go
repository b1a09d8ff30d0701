package poollog

import (
	"github.com/sirupsen/logrus"

	"github.com/ccoin/shieldpool/internal/pool"
)

// EventSink adapts internal/pool.EventSink to structured log lines, one
// per emitted event, field names matching the event's own fields.
type EventSink struct {
	Logger *logrus.Logger
}

// Emit implements pool.EventSink.
func (s EventSink) Emit(ev pool.Event) {
	switch e := ev.(type) {
	case pool.Deposited:
		s.Logger.WithFields(logrus.Fields{
			"pool":       e.Pool,
			"leaf_index": e.LeafIndex,
			"amount":     e.Amount,
		}).Info("deposited")
	case pool.Redeemed:
		s.Logger.WithFields(logrus.Fields{
			"pool":        e.Pool,
			"recipient":   e.Recipient,
			"amount":      e.Amount,
			"relayer_fee": e.RelayerFee,
		}).Info("redeemed")
	case pool.PoolInitialized:
		s.Logger.WithFields(logrus.Fields{
			"pool":       e.Pool,
			"owner":      e.Owner,
			"tree_depth": e.TreeDepth,
		}).Info("pool initialized")
	case pool.PausedStateChanged:
		s.Logger.WithFields(logrus.Fields{
			"pool":   e.Pool,
			"paused": e.Paused,
		}).Info("paused state changed")
	case pool.OwnerTransferProposed:
		s.Logger.WithFields(logrus.Fields{
			"pool":    e.Pool,
			"current": e.Current,
			"pending": e.Pending,
		}).Info("owner transfer proposed")
	case pool.OwnerTransferAccepted:
		s.Logger.WithFields(logrus.Fields{
			"pool": e.Pool,
			"old":  e.Old,
			"new":  e.New,
		}).Info("owner transfer accepted")
	case pool.VerificationKeyChanged:
		s.Logger.WithFields(logrus.Fields{
			"pool":   e.Pool,
			"locked": e.Locked,
		}).Info("verification key changed")
	default:
		s.Logger.WithField("event", e).Warn("unrecognized event type")
	}
}
