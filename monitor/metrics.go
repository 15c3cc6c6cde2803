package monitor

// Snapshot is a dumb data point derived from a region's sample history.
type Snapshot struct {
	ID       string // region identifier
	Name     string // human readable region name
	Current  int64  // last RTT in ms, NoData if the last probe failed
	Average  int64  // winsorized mean RTT in ms, NoData without any success
	Count    int    // number of recorded samples, failures included
	Failures int    // number of failed probes
}
