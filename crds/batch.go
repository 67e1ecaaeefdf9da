package crds

// InsertValues is the batch insertion driver. now is supplied once for
// the whole call. Values whose wallclock falls outside
// [now-timeoutMs, now+timeoutMs] are silently discarded — they are
// neither inserted nor reported as failures — using saturating
// arithmetic so a wallclock near zero or near the u64 max cannot
// underflow/overflow the window bounds. Every other value is inserted;
// its input index is collected into the returned slice if the insert
// returned any error, including the non-fatal OldValue/DuplicateValue
// outcomes.
func (t *Table) InsertValues(values []CrdsValue, now uint64, timeoutMs uint64) []int {
	lo := saturatingSub(now, timeoutMs)
	hi := saturatingAdd(now, timeoutMs)

	var failed []int
	for i, v := range values {
		wc := v.Wallclock()
		if wc < lo || wc > hi {
			t.logger.Debugf("crds: discarding value outside wallclock window: label=%s wallclock=%d window=[%d,%d]", v.Label(), wc, lo, hi)
			continue
		}
		if err := t.Insert(v, now); err != nil {
			t.logger.Warnf("crds: insert failed: label=%s err=%v", v.Label(), err)
			failed = append(failed, i)
		}
	}
	return failed
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}
