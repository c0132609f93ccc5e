package market

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/hostiface"
)

// Market is the host object bound to the `market.` reserved prefix: the
// shared simulation clock and the set of all coins/traders in play.
// Grounded on sim_ops.py's usage of market.time, market.end_time,
// market.verbose, market.wallet (there, every coin in the market -- not to
// be confused with a trader's own per-coin Wallet) and market.leaved (the
// set of traders who have called leave()).
type Market struct {
	Time    float64
	EndTime float64
	Verbose bool

	Coins   []*GenericCoin
	Traders []*GenericTrader
	Leaved  map[*GenericTrader]bool
}

// New returns an empty Market running from tick 0 to endTime.
func New(endTime float64) *Market {
	return &Market{EndTime: endTime, Leaved: map[*GenericTrader]bool{}}
}

func (m *Market) Get(name string) (any, error) {
	switch name {
	case "time":
		return m.Time, nil
	case "end_time":
		return m.EndTime, nil
	case "verbose":
		return boolToFloat(m.Verbose), nil
	default:
		return nil, fmt.Errorf("market: no attribute %q", name)
	}
}

func (m *Market) Set(name string, value any) error {
	switch name {
	case "time":
		f, err := asFloat(value)
		if err != nil {
			return fmt.Errorf("market.time: %w", err)
		}
		m.Time = f
		return nil
	case "end_time":
		f, err := asFloat(value)
		if err != nil {
			return fmt.Errorf("market.end_time: %w", err)
		}
		m.EndTime = f
		return nil
	case "verbose":
		m.Verbose = isTruthy(value)
		return nil
	default:
		return fmt.Errorf("market: no writable attribute %q", name)
	}
}

// CallMethod implements the one method scripts and natives call on the
// market directly: "reset", which restores the clock and clears the
// leaved set, grounded on trader.py's optimize() calling market.reset()
// between fitness-evaluation runs.
func (m *Market) CallMethod(name string, args []any) (any, error) {
	switch name {
	case "reset":
		m.Reset()
		return nil, nil
	default:
		return nil, fmt.Errorf("market: no method %q", name)
	}
}

// Reset restores the clock to 0 and clears the leaved set, leaving coin and
// trader state untouched (a fresh run re-initializes those separately).
func (m *Market) Reset() {
	m.Time = 0
	m.Leaved = map[*GenericTrader]bool{}
}

// InstallBehavior is not meaningful on the market singleton -- it is never
// wrapped by an AgentTemplate, so the driver never installs script
// behaviors on it. Implemented only to satisfy hostiface.HostObject.
func (m *Market) InstallBehavior(name string, fn func() (any, error)) error {
	return fmt.Errorf("market: behaviors cannot be installed on the market object")
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func isTruthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int64:
		return x != 0
	case string:
		return x != ""
	default:
		return v != nil
	}
}

var _ hostiface.HostObject = (*Market)(nil)
var _ hostiface.HostObject = (*GenericCoin)(nil)
var _ hostiface.HostObject = (*GenericTrader)(nil)
var _ hostiface.AgentTemplate = CoinTemplate{}
var _ hostiface.AgentTemplate = TraderTemplate{}
