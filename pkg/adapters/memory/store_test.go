package memory_test

import (
	"testing"

	"github.com/aretw0/functree/pkg/adapters/memory"
	"github.com/aretw0/functree/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunCorpusStoreContract(t, store)
	assert.Positive(t, store.Len())
}
