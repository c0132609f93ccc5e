package market

import (
	"math/rand"

	"github.com/lassiter/cryptolang/internal/hostiface"
)

// Templates returns the built-in agent-template registry internal/checker
// and internal/interp validate and instantiate agent declarations against,
// keyed by subtype name -- "generic_coin" for GenericCoin, "generic_trader"
// for GenericTrader. rng seeds CoinTemplate's random-walk updates.
func Templates(rng *rand.Rand) map[string]hostiface.AgentTemplate {
	return map[string]hostiface.AgentTemplate{
		"generic_coin":   CoinTemplate{RNG: rng},
		"generic_trader": TraderTemplate{},
	}
}
