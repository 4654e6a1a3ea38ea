package dispatchprice

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
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithStartDate", "dispatch_price")
	}
}

func WithEndDate(endDate time.Time) connectors.Option {
	return func(c connectors.Client) error {
		if w, ok := c.(*Client); ok {
			w.endDate = endDate
			return nil
		}
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithEndDate", "dispatch_price")
	}
}

func WithRegion(region string) connectors.Option {
	return func(c connectors.Client) error {
		if w, ok := c.(*Client); ok {
			w.region = region
			return nil
		}
		return fmt.Errorf(connectors.ErrIncompatibleOption, "WithRegion", "dispatch_price")
	}
}
