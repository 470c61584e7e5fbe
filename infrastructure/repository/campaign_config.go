package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

const campaignConfigsTable = "campaign_configs"

var campaignConfigColumns = []string{"id", "campaign_id", "target_cpa", "target_roas", "created_at", "updated_at"}

//go:generate mockgen -source=campaign_config.go -destination=mocks/campaign_config_mock.go -package=mocks

type CampaignConfigRepository interface {
	GetByCampaignID(ctx context.Context, campaignID string) (*domain.CampaignConfig, error)
	SaveOrUpdate(ctx context.Context, config *domain.CampaignConfig) (*domain.CampaignConfig, error)
	ListCampaignIDs(ctx context.Context) ([]string, error)
}

type campaignConfigRepository struct {
	conn postgres.Queryer
}

func NewCampaignConfigRepository(conn postgres.Queryer) CampaignConfigRepository {
	return &campaignConfigRepository{
		conn: conn,
	}
}

// GetByCampaignID devolve nil, nil quando a campanha não tem configuração
func (r *campaignConfigRepository) GetByCampaignID(ctx context.Context, campaignID string) (*domain.CampaignConfig, error) {
	query, args, err := squirrel.
		Select(campaignConfigColumns...).
		From(campaignConfigsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	cfg, err := deserializeCampaignConfig(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar configuração da campanha %s: %w", campaignID, err)
	}

	return cfg, nil
}

// SaveOrUpdate grava as metas da campanha. Uma segunda gravação substitui as duas
// metas, inclusive apagando uma meta que não veio.
func (r *campaignConfigRepository) SaveOrUpdate(ctx context.Context, config *domain.CampaignConfig) (*domain.CampaignConfig, error) {
	query, args, err := squirrel.
		Insert(campaignConfigsTable).
		Columns("campaign_id", "target_cpa", "target_roas").
		Values(config.CampaignID, config.TargetCPA, config.TargetROAS).
		Suffix(`ON CONFLICT (campaign_id) DO UPDATE SET
			target_cpa = EXCLUDED.target_cpa,
			target_roas = EXCLUDED.target_roas,
			updated_at = NOW()
			RETURNING id, campaign_id, target_cpa, target_roas, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved, err := deserializeCampaignConfig(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("erro ao salvar configuração da campanha %s: %w", config.CampaignID, err)
	}

	return saved, nil
}

func (r *campaignConfigRepository) ListCampaignIDs(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("campaign_id").
		From(campaignConfigsTable).
		OrderBy("campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas configuradas: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao ler campanha configurada: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func deserializeCampaignConfig(row *sql.Row) (*domain.CampaignConfig, error) {
	cfg := &domain.CampaignConfig{}

	if err := row.Scan(
		&cfg.ID,
		&cfg.CampaignID,
		&cfg.TargetCPA,
		&cfg.TargetROAS,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}
