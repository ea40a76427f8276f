package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/config"
	"github.com/mockdrill/mockdrill-backend/internal/model"
)

const (
	ScoreBatchSize    = 50
	ScoreBatchTimeout = 2 * time.Second
	ScorePollTimeout  = 1 * time.Second
)

// ScoringWorker consumes persist_scores_queue and batch-updates graded
// attempts to the scored state. Grading already happened in RAM at
// submit time; this worker only makes the numbers durable.
type ScoringWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewScoringWorker creates a new ScoringWorker.
func NewScoringWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ScoringWorker {
	return &ScoringWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "scoring_worker").Logger(),
	}
}

type scorePayload struct {
	AttemptID     string               `json:"attempt_id"`
	TotalScore    float64              `json:"total_score"`
	MaxScore      float64              `json:"max_score"`
	SectionScores []model.SectionScore `json:"section_scores"`
}

// Start begins the batching worker loop. Call in a goroutine.
func (w *ScoringWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ScoringWorker started")

	batch := make([]*scorePayload, 0, ScoreBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ScoreBatchSize || time.Since(lastFlush) >= ScoreBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ScorePollTimeout, config.WorkerKey.PersistScoresQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p scorePayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

func (w *ScoringWorker) flushSafe(ctx context.Context, batch []*scorePayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkUpdateScores(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk score update failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed, requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue, raw)
			}
		}
		return
	}

	// Scores are durable now; the autosave buffers are no longer needed.
	w.bulkClearAutosavedAnswers(ctx, batch)
}

func (w *ScoringWorker) bulkUpdateScores(ctx context.Context, batch []*scorePayload) error {
	n := len(batch)

	attemptIDs := make([]uuid.UUID, 0, n)
	totals := make([]float64, 0, n)
	maxes := make([]float64, 0, n)
	sectionsBytes := make([][]byte, 0, n)

	for _, p := range batch {
		aID, err := uuid.Parse(p.AttemptID)
		if err != nil {
			return err
		}

		sb, _ := json.Marshal(p.SectionScores)

		attemptIDs = append(attemptIDs, aID)
		totals = append(totals, p.TotalScore)
		maxes = append(maxes, p.MaxScore)
		sectionsBytes = append(sectionsBytes, sb)
	}

	query := `
		UPDATE attempts AS a
		SET status = 'scored',
		    total_score = t.total,
		    max_score = t.max,
		    section_scores = t.sections
		FROM (
			SELECT
				u.attempt_id,
				u.total,
				u.max,
				u.sections
			FROM UNNEST(
				$1::uuid[],
				$2::float8[],
				$3::float8[],
				$4::jsonb[]
			) AS u (attempt_id, total, max, sections)
		) AS t
		WHERE a.id = t.attempt_id
	`

	_, err := w.pool.Exec(ctx, query, attemptIDs, totals, maxes, sectionsBytes)
	return err
}

func (w *ScoringWorker) bulkClearAutosavedAnswers(ctx context.Context, batch []*scorePayload) {
	pipe := w.rdb.Pipeline()
	for _, p := range batch {
		pipe.Del(ctx, config.CacheKey.AttemptAnswersKey(p.AttemptID))
	}
	_, _ = pipe.Exec(ctx)
}

func (w *ScoringWorker) persistSingle(ctx context.Context, p *scorePayload) error {
	aID, err := uuid.Parse(p.AttemptID)
	if err != nil {
		return err
	}

	sb, err := json.Marshal(p.SectionScores)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`UPDATE attempts
		 SET status = 'scored',
		     total_score = $1,
		     max_score = $2,
		     section_scores = $3
		 WHERE id = $4`,
		p.TotalScore, p.MaxScore, sb, aID,
	)
	return err
}
