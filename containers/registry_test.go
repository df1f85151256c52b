package containers

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestRegistryBindLookupUnbind(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Lookup("k1"); ok {
		t.Fatal("empty registry should not resolve k1")
	}

	ref := ContainerRef{ContainerID: "abc", Name: "filo-client-k1"}
	reg.Bind("k1", ref)

	got, ok := reg.Lookup("k1")
	if !ok || got != ref {
		t.Errorf("Lookup = (%+v, %v), want (%+v, true)", got, ok, ref)
	}

	// Rebind üzerine yazar
	ref2 := ContainerRef{ContainerID: "def", Name: "filo-client-k1-v2"}
	reg.Bind("k1", ref2)
	if got, _ := reg.Lookup("k1"); got != ref2 {
		t.Errorf("rebind: Lookup = %+v, want %+v", got, ref2)
	}

	reg.Unbind("k1")
	if _, ok := reg.Lookup("k1"); ok {
		t.Error("k1 should be gone after Unbind")
	}
	// Unbind idempotent
	reg.Unbind("k1")
}

func TestRegistrySnapshotAndOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("k2", ContainerRef{ContainerID: "c2", Name: "n2"})
	reg.Bind("k1", ContainerRef{ContainerID: "c1", Name: "n1"})
	reg.Bind("k3", ContainerRef{ContainerID: "c3", Name: "n3"})

	want := map[string]string{"k1": "n1", "k2": "n2", "k3": "n3"}
	if got := reg.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot = %v, want %v", got, want)
	}

	if got := reg.ClientIDs(); !reflect.DeepEqual(got, []string{"k1", "k2", "k3"}) {
		t.Errorf("ClientIDs = %v, want sorted ids", got)
	}

	// Snapshot bir kopyadır — mutate edilmesi registry'yi etkilemez
	snap := reg.Snapshot()
	snap["k1"] = "tampered"
	if got, _ := reg.Lookup("k1"); got.Name != "n1" {
		t.Error("mutating snapshot leaked into registry")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("k%d", n)
			reg.Bind(id, ContainerRef{ContainerID: id, Name: "c-" + id})
		}(i)
		go func(n int) {
			defer wg.Done()
			reg.Lookup(fmt.Sprintf("k%d", n))
			reg.Snapshot()
		}(i)
	}
	wg.Wait()

	if reg.Len() != 50 {
		t.Errorf("Len = %d, want 50", reg.Len())
	}
}
