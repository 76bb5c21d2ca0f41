// internal/client/schedule.go
package client

import (
	"context"

	"github.com/sciengasummits/confadmin/internal/app/system/schedule"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// LoadSchedule fetches the sessions slot and normalizes whatever shape it
// currently holds into the canonical day list. A slot that has never been
// written yields the empty three-day skeleton.
func (c *Client) LoadSchedule(ctx context.Context) ([]schedule.Day, error) {
	doc, err := c.GetContent(ctx, models.ContentKeySessions)
	if err != nil {
		return nil, err
	}
	return schedule.Normalize(doc), nil
}

// SaveSchedule writes the canonical day list back to the sessions slot
// along with the regenerated legacy mirror. It merges into the current
// document rather than replacing it, so sibling fields edited by other
// pages (the flat sessions topic list, for one) survive the save.
func (c *Client) SaveSchedule(ctx context.Context, days []schedule.Day) (map[string]any, error) {
	return c.SaveFields(ctx, models.ContentKeySessions, schedule.Payload(days))
}
