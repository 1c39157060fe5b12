package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"backend/internal/models"
	"backend/internal/platform/logger"
)

// maxIdentity is the largest id we ever issue: 2^53-1, the biggest integer a
// JSON consumer can hold exactly. Crossing it is a fatal condition, not
// something to wrap around silently.
const maxIdentity = int64(1)<<53 - 1

var (
	// ErrInvalidBatchSize rejects batch requests with a non-positive count.
	ErrInvalidBatchSize = errors.New("batch size must be a positive integer")
	// ErrIdentityReuse rejects a start id at or below an identity already issued.
	ErrIdentityReuse = errors.New("start id overlaps identities already issued")
	// ErrIdentityExhausted signals the identity counter ran out of safe range.
	ErrIdentityExhausted = errors.New("identity space exhausted")
)

// Producer issues monotonically increasing identities and assembles generated
// products into capped-size batches. The identity counter is explicit state
// guarded by a mutex. It is never inferred from dataset length, so filtering
// rows out of view can never perturb issuance.
type Producer struct {
	mu       sync.Mutex
	lastID   int64
	template models.Product
	rng      *rand.Rand
	session  string
	log      *logger.Logger
}

// NewProducer builds a producer seeded with its generation template and
// random source. Each producer is an independent session with its own
// identity counter.
func NewProducer(template models.Product, rng *rand.Rand, log *logger.Logger) *Producer {
	session := uuid.NewString()
	return &Producer{
		template: template,
		rng:      rng,
		session:  session,
		log:      log.With("session", session),
	}
}

// Session returns the producer's session id.
func (p *Producer) Session() string {
	return p.session
}

// LastID returns the highest identity issued so far (0 before any batch).
func (p *Producer) LastID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastID
}

// ProduceBatch issues count consecutive identities starting at startID and
// returns the records in ascending identity order. startID must lie past
// every identity already issued; nothing is emitted on failure.
func (p *Producer) ProduceBatch(startID int64, count int) ([]models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.produceLocked(startID, count)
}

// Initial generates the session's first batch, identities 1..count.
func (p *Producer) Initial(count int) ([]models.Product, error) {
	return p.ProduceBatch(1, count)
}

// ProduceMore generates total new records in chunks of at most chunk each,
// continuing one past the highest identity ever issued. The last chunk is
// sized to exactly consume the remainder. Chunk boundaries are where a caller
// can interleave progress reporting or cancellation.
func (p *Producer) ProduceMore(total, chunk int) ([]models.Product, error) {
	if total <= 0 || chunk <= 0 {
		return nil, fmt.Errorf("produce %d in chunks of %d: %w", total, chunk, ErrInvalidBatchSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	t0 := time.Now()
	checkpoint := p.lastID
	out := make([]models.Product, 0, total)
	for issued := 0; issued < total; {
		n := chunk
		if rem := total - issued; rem < n {
			n = rem
		}
		batch, err := p.produceLocked(p.lastID+1, n)
		if err != nil {
			// Roll the counter back so identities reserved by earlier
			// chunks of this failed call are not skipped forever.
			p.lastID = checkpoint
			return nil, err
		}
		out = append(out, batch...)
		issued += n
	}

	p.log.Info("generated records",
		"count", len(out),
		"chunk", chunk,
		"lastId", p.lastID,
		"took", time.Since(t0),
	)
	return out, nil
}

// produceLocked does the actual issuance. Callers hold p.mu.
func (p *Producer) produceLocked(startID int64, count int) ([]models.Product, error) {
	if count <= 0 {
		return nil, fmt.Errorf("batch of %d: %w", count, ErrInvalidBatchSize)
	}
	if startID <= p.lastID {
		return nil, fmt.Errorf("start id %d, last issued %d: %w", startID, p.lastID, ErrIdentityReuse)
	}
	if startID > maxIdentity-int64(count)+1 {
		return nil, ErrIdentityExhausted
	}

	batch := make([]models.Product, count)
	for i := range batch {
		batch[i] = Generate(p.template, startID+int64(i), p.rng)
	}
	p.lastID = startID + int64(count) - 1
	return batch, nil
}
