package app

import (
	"math/rand"
	"sync"
	"testing"

	"settlers/internal/domain"
)

func storeSession(id string) *domain.Session {
	players := []domain.Player{{ID: "u1", Name: "u1"}, {ID: "u2", Name: "u2"}}
	return domain.NewSession(id, players, rand.New(rand.NewSource(1)))
}

func TestStoreDoUnknownSession(t *testing.T) {
	st := NewStore()
	_, err := st.Do("missing", func(*domain.Session) ([]Event, error) {
		t.Fatalf("fn ran for a missing session")
		return nil, nil
	})
	if kind, _ := domain.KindOf(err); kind != domain.KindSessionNotFound {
		t.Fatalf("error kind = %v, want session_not_found", kind)
	}
}

func TestStorePutDoDelete(t *testing.T) {
	st := NewStore()
	st.Put(storeSession("s1"))
	if st.Len() != 1 {
		t.Fatalf("len = %d, want 1", st.Len())
	}

	_, err := st.Do("s1", func(sess *domain.Session) ([]Event, error) {
		if sess.ID != "s1" {
			t.Errorf("fn got session %s", sess.ID)
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	st.Delete("s1")
	if st.Len() != 0 {
		t.Fatalf("len after delete = %d, want 0", st.Len())
	}
	_, err = st.Do("s1", func(*domain.Session) ([]Event, error) { return nil, nil })
	if kind, _ := domain.KindOf(err); kind != domain.KindSessionNotFound {
		t.Fatalf("error kind = %v, want session_not_found", kind)
	}
}

func TestStoreSerializesSameSession(t *testing.T) {
	st := NewStore()
	st.Put(storeSession("s1"))

	// Each worker reads then writes a counter; lost updates would show
	// a final value below the write count.
	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				st.Do("s1", func(sess *domain.Session) ([]Event, error) {
					sess.Players["u1"].Resources[domain.ResourceWood]++
					return nil, nil
				})
			}
		}()
	}
	wg.Wait()

	_, err := st.Do("s1", func(sess *domain.Session) ([]Event, error) {
		got := sess.Players["u1"].Resources[domain.ResourceWood]
		if got != workers*perWorker {
			t.Errorf("counter = %d, want %d", got, workers*perWorker)
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
}
