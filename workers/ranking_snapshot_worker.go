package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pelada-backend/services"
	"pelada-backend/utils"
)

// SnapshotMetrics is every leaderboard the snapshot job exports.
var SnapshotMetrics = []string{
	services.MetricGoals,
	services.MetricComplaints,
	services.MetricVictories,
	services.MetricDraws,
	services.MetricDefeats,
	services.MetricMinutes,
}

// PublishRankingSnapshots periodically exports every ranking as JSON to
// object storage, so the frontend can read leaderboards straight from the CDN
// without hitting the API. No-op when storage is not configured.
func PublishRankingSnapshots(ctx context.Context, rankings *services.RankingService, interval time.Duration) {
	if !utils.StorageEnabled() {
		log.Println("[RankingSnapshot] object storage not configured, snapshots disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// run once at startup, then on the ticker
	publishAll(ctx, rankings)

	for {
		select {
		case <-ctx.Done():
			log.Println("[RankingSnapshot] stopping")
			return
		case <-ticker.C:
			publishAll(ctx, rankings)
		}
	}
}

func publishAll(ctx context.Context, rankings *services.RankingService) {
	for _, metric := range SnapshotMetrics {
		if err := publishOne(ctx, rankings, metric); err != nil {
			log.Printf("[RankingSnapshot] %s: %v", metric, err)
		}
	}
}

func publishOne(ctx context.Context, rankings *services.RankingService, metric string) error {
	ranking, err := rankings.Rank(metric)
	if err != nil {
		return fmt.Errorf("failed to build ranking: %w", err)
	}

	payload, err := json.Marshal(struct {
		*services.Ranking
		GeneratedAt time.Time `json:"generated_at"`
	}{ranking, time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("rankings/%s.json", metric)
	url, err := utils.UploadBytesToR2(ctx, key, "application/json", payload)
	if err != nil {
		return err
	}

	log.Printf("[RankingSnapshot] published %s (%d entries) -> %s", metric, ranking.Total, url)
	return nil
}
