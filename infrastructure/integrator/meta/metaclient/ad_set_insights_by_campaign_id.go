package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta/domain"
)

const (
	adSetInsightFields = "account_id,campaign_id,campaign_name,adset_id,adset_name,spend,impressions,clicks,reach,frequency,actions,action_values"
	maxInsightPages    = 50
)

// GetAdSetInsightsByCampaignID busca os insights por ad set de uma campanha, seguindo a paginação
func (c *MetaClient) GetAdSetInsightsByCampaignID(ctx context.Context, campaignID string, window TimeRange, breakdowns ...string) ([]metadomain.AdSetInsight, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.cfg.Meta.URL, campaignID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", window.Since.Format(time.DateOnly), window.Until.Format(time.DateOnly))

	limit := c.cfg.Meta.PageLimit
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Add("level", "adset")
	params.Add("fields", adSetInsightFields)
	params.Add("time_range", timeRange)
	params.Add("limit", strconv.Itoa(limit))
	if len(breakdowns) > 0 {
		params.Add("breakdowns", strings.Join(breakdowns, ","))
	}
	params.Add("access_token", c.cfg.Meta.AccessToken)

	next := baseURL + "?" + params.Encode()

	insights := make([]metadomain.AdSetInsight, 0)
	for page := 0; next != ""; page++ {
		if page == maxInsightPages {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"pages":       page,
			}).Warn("meta: page limit reached, truncating ad set insights")
			break
		}

		var response metadomain.ResponseAdSetInsights
		if err := c.get(ctx, next, &response); err != nil {
			return nil, err
		}

		insights = append(insights, response.Data...)
		next = response.Paging.Next
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"rows":        len(insights),
		"breakdowns":  breakdowns,
	}).Debug("meta: ad set insights fetched")

	return insights, nil
}
