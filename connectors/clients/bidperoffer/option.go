package bidperoffer

import (
	"fmt"
	"time"

	"github.com/ydereck/nembid/connectors"
)

func WithStartDate(startDate time.Time) connectors.Option {
	return func(c connectors.Client) error {
		if w, ok := c.(*Client); ok {
			w.startDate = startDate
			return nil
		}
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithStartDate", "bid_per_offer")
	}
}

func WithEndDate(endDate time.Time) connectors.Option {
	return func(c connectors.Client) error {
		if w, ok := c.(*Client); ok {
			w.endDate = endDate
			return nil
		}
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithEndDate", "bid_per_offer")
	}
}

func WithUnits(duids []string) connectors.Option {
	return func(c connectors.Client) error {
		if w, ok := c.(*Client); ok {
			w.units = duids
			return nil
		}
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithUnits", "bid_per_offer")
	}
}
