package broker

import "testing"

func TestBrokers_AddAndAllocateID(t *testing.T) {
	pop := NewBrokers()
	id := pop.AllocateID()
	pop.Add(Broker{ID: id, Name: "Acme Brokerage"})

	if pop.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pop.Len())
	}

	next := pop.AllocateID()
	if next == id {
		t.Errorf("AllocateID returned duplicate ID %d", id)
	}
}
