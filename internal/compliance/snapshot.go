package compliance

import (
	"sync"
	"time"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// Snapshot est l'ensemble immuable du roster au dernier fetch réussi. Chaque
// cycle de rafraîchissement en produit un entièrement neuf ; l'ancien est
// remplacé atomiquement pour éviter les agrégats partiellement mis à jour.
type Snapshot struct {
	Records            []Record
	Teams              []model.Team
	PriorActivityTotal int
	FetchedAt          time.Time
}

// SnapshotStore garde le dernier bon snapshot et ordonne les fetchs
// concurrents : le token croît de façon monotone et une réponse arrivée après
// qu'une requête plus récente a déjà publié est rejetée (last-request-wins),
// pour qu'une donnée ancienne n'écrase jamais une donnée plus fraîche.
type SnapshotStore struct {
	mu        sync.Mutex
	nextToken uint64
	published uint64
	current   *Snapshot
}

// Begin réserve un token pour un nouveau cycle de fetch
func (s *SnapshotStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextToken++
	return s.nextToken
}

// Publish installe le snapshot si aucun fetch plus récent n'a déjà publié.
// Renvoie false quand le snapshot est périmé et a été ignoré.
func (s *SnapshotStore) Publish(token uint64, snap *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.published {
		return false
	}
	s.published = token
	s.current = snap
	return true
}

// Current renvoie le dernier bon snapshot, nil si aucun fetch n'a encore
// abouti. En cas d'échec amont, l'appelant garde ce snapshot et propose un
// retry au lieu de vider la vue.
func (s *SnapshotStore) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
