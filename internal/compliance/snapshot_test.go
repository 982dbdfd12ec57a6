package compliance

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStoreEmptyByDefault(t *testing.T) {
	var store SnapshotStore
	assert.Nil(t, store.Current())
}

func TestSnapshotStorePublishAndRead(t *testing.T) {
	var store SnapshotStore
	snap := &Snapshot{FetchedAt: time.Now()}

	token := store.Begin()
	assert.True(t, store.Publish(token, snap))
	assert.Same(t, snap, store.Current())
}

func TestSnapshotStoreStalePublishRejected(t *testing.T) {
	// Deux fetchs concurrents : le plus récent publie le premier, la réponse
	// du fetch plus ancien arrive ensuite et doit être ignorée
	var store SnapshotStore

	oldToken := store.Begin()
	newToken := store.Begin()

	fresh := &Snapshot{FetchedAt: time.Now()}
	stale := &Snapshot{FetchedAt: time.Now().Add(-time.Minute)}

	require.True(t, store.Publish(newToken, fresh))
	assert.False(t, store.Publish(oldToken, stale))
	assert.Same(t, fresh, store.Current())
}

func TestSnapshotStoreRepublishSameTokenRejected(t *testing.T) {
	var store SnapshotStore
	token := store.Begin()

	require.True(t, store.Publish(token, &Snapshot{}))
	assert.False(t, store.Publish(token, &Snapshot{}))
}

func TestSnapshotStoreKeepsLastGoodOnFailedCycle(t *testing.T) {
	// Un cycle qui échoue ne publie rien : le snapshot précédent reste servi
	var store SnapshotStore

	token := store.Begin()
	good := &Snapshot{FetchedAt: time.Now()}
	require.True(t, store.Publish(token, good))

	_ = store.Begin() // cycle suivant, le fetch échoue, pas de Publish
	assert.Same(t, good, store.Current())
}

func TestSnapshotStoreConcurrentCycles(t *testing.T) {
	var store SnapshotStore
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := store.Begin()
			store.Publish(token, &Snapshot{FetchedAt: time.Now()})
		}()
	}
	wg.Wait()

	require.NotNil(t, store.Current())
	// Après la rafale, un nouveau cycle doit toujours pouvoir publier
	token := store.Begin()
	assert.True(t, store.Publish(token, &Snapshot{}))
}
