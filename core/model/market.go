package model

import "fmt"

// Market identifies a NEM spot market: energy or one of the eight FCAS
// contingency/regulation markets.
type Market string

const (
	MarketEnergy     Market = "ENERGY"
	MarketRaise6Sec  Market = "RAISE6SEC"
	MarketRaise60Sec Market = "RAISE60SEC"
	MarketRaise5Min  Market = "RAISE5MIN"
	MarketRaiseReg   Market = "RAISEREG"
	MarketLower6Sec  Market = "LOWER6SEC"
	MarketLower60Sec Market = "LOWER60SEC"
	MarketLower5Min  Market = "LOWER5MIN"
	MarketLowerReg   Market = "LOWERREG"
)

// FCASMarkets lists the eight FCAS markets in canonical order.
func FCASMarkets() []Market {
	return []Market{
		MarketRaise6Sec, MarketRaise60Sec, MarketRaise5Min, MarketRaiseReg,
		MarketLower6Sec, MarketLower60Sec, MarketLower5Min, MarketLowerReg,
	}
}

// AllMarkets lists energy followed by the FCAS markets in canonical order.
func AllMarkets() []Market {
	return append([]Market{MarketEnergy}, FCASMarkets()...)
}

// ParseMarket validates a market identifier as received from the API or a
// config file.
func ParseMarket(s string) (Market, error) {
	for _, m := range AllMarkets() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown market %q", s)
}

// String implements fmt.Stringer.
func (m Market) String() string { return string(m) }
