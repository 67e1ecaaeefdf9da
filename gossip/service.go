// Package gossip wires a crds.Table to a memberlist cluster: incoming
// gossip messages are decoded and inserted, accepted local values are
// queued for outbound broadcast, and a background loop periodically
// trims the purged-hash queue. None of this lives inside package crds —
// the table has no notion of a network.
package gossip

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/memberlist"

	"github.com/tos-network/crds/config"
	"github.com/tos-network/crds/crds"
	"github.com/tos-network/crds/log"
	"github.com/tos-network/crds/metrics"
)

// Service binds a crds.Table to a memberlist cluster.
type Service struct {
	table   *crds.Table
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *log.Logger

	ml         *memberlist.Memberlist
	broadcasts *memberlist.TransmitLimitedQueue
}

// New creates the memberlist node, wires it to table, and joins the
// configured seed nodes.
func New(cfg *config.Config, table *crds.Table, m *metrics.Metrics, logger *log.Logger) (*Service, error) {
	s := &Service{
		table:   table,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}

	mlConfig := memberlist.DefaultLocalConfig()
	mlConfig.Name = cfg.Server.NodeID
	mlConfig.BindAddr = cfg.Server.Host
	mlConfig.BindPort = cfg.Server.BindPort
	mlConfig.GossipInterval = cfg.Gossip.GossipInterval
	mlConfig.ProbeTimeout = cfg.Gossip.ProbeTimeout
	mlConfig.ProbeInterval = cfg.Gossip.ProbeInterval
	mlConfig.PushPullInterval = cfg.Gossip.PushPullInterval
	mlConfig.Delegate = s
	mlConfig.Events = &eventDelegate{logger: logger}

	ml, err := memberlist.Create(mlConfig)
	if err != nil {
		return nil, fmt.Errorf("gossip: create memberlist: %w", err)
	}
	s.ml = ml

	s.broadcasts = &memberlist.TransmitLimitedQueue{
		NumNodes:       func() int { return ml.NumMembers() },
		RetransmitMult: 3,
	}

	if len(cfg.Gossip.SeedNodes) > 0 {
		if _, err := ml.Join(cfg.Gossip.SeedNodes); err != nil {
			logger.Warn("failed to join some seed nodes", "err", err)
		}
	}

	return s, nil
}

// Push encodes value, inserts it locally, and — if accepted — queues it
// for gossip transmission to the rest of the cluster.
func (s *Service) Push(value crds.CrdsValue, now uint64) error {
	if err := s.table.Insert(value, now); err != nil {
		return err
	}
	enc, err := crds.Encode(value)
	if err != nil {
		return err
	}
	s.broadcasts.QueueBroadcast(&valueBroadcast{msg: enc})
	return nil
}

// Run starts the background purge-trim loop. It blocks until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Table.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := uint64(time.Now().UnixMilli()) - uint64(s.cfg.Table.PurgeTrimAfter.Milliseconds())
			before := s.table.Purged().Len()
			s.table.Purged().Trim(cutoff)
			s.metrics.SetPurgedSize(s.table.Purged().Len())
			s.metrics.SetTableSize(s.table.Len())
			s.metrics.SetCursor(s.table.Cursor())
			s.logger.Debug("purge trim complete", "removed", before-s.table.Purged().Len())
		}
	}
}

// Shutdown leaves the cluster gracefully.
func (s *Service) Shutdown() error {
	return s.ml.Shutdown()
}

// NodeMeta implements memberlist.Delegate. This node advertises no
// metadata beyond what memberlist itself tracks.
func (s *Service) NodeMeta(limit int) []byte { return nil }

// NotifyMsg implements memberlist.Delegate: decode an incoming gossip
// value, apply the same wallclock freshness window insert_values would,
// and insert it using local receipt time as the acceptance timestamp.
func (s *Service) NotifyMsg(b []byte) {
	value, err := crds.Decode(b)
	if err != nil {
		s.logger.Warn("discarding malformed gossip message", "err", err)
		return
	}

	now := uint64(time.Now().UnixMilli())
	timeout := s.cfg.Table.InsertTimeoutMs
	if wc := value.Wallclock(); wc+timeout < now || wc > now+timeout {
		s.metrics.RecordBatchDiscard()
		s.logger.Debug("discarding gossip value outside wallclock window", "label", value.Label(), "wallclock", wc, "now", now)
		return
	}

	if err := s.table.Insert(value, now); err != nil {
		s.metrics.RecordInsert(outcomeLabel(err))
		return
	}
	s.metrics.RecordInsert("ok")
}

// GetBroadcasts implements memberlist.Delegate.
func (s *Service) GetBroadcasts(overhead, limit int) [][]byte {
	return s.broadcasts.GetBroadcasts(overhead, limit)
}

// LocalState implements memberlist.Delegate. Full-table anti-entropy
// sync on push/pull is an external protocol concern layered on top of
// the table (bitmask-matched pull requests), not implemented by this
// minimal transport binding.
func (s *Service) LocalState(join bool) []byte { return nil }

// MergeRemoteState implements memberlist.Delegate.
func (s *Service) MergeRemoteState(buf []byte, join bool) {}

func outcomeLabel(err error) string {
	switch err {
	case crds.ErrOldValue:
		return "old_value"
	case crds.ErrDuplicateValue:
		return "duplicate_value"
	case crds.ErrResourceError:
		return "resource_error"
	default:
		return "error"
	}
}

// eventDelegate logs membership changes.
type eventDelegate struct {
	logger *log.Logger
}

func (d *eventDelegate) NotifyJoin(n *memberlist.Node) {
	d.logger.Info("node joined", "name", n.Name, "addr", n.Addr.String())
}

func (d *eventDelegate) NotifyLeave(n *memberlist.Node) {
	d.logger.Info("node left", "name", n.Name)
}

func (d *eventDelegate) NotifyUpdate(n *memberlist.Node) {
	d.logger.Debug("node updated", "name", n.Name)
}
