package topics

import "testing"

func TestRegistryLoadsEmbeddedTaxonomy(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("load taxonomy: %v", err)
	}

	if len(reg.All()) == 0 {
		t.Fatal("taxonomy loaded empty")
	}

	topic, ok := reg.Get("machine-learning")
	if !ok {
		t.Fatal("machine-learning not in taxonomy")
	}
	if topic.Title == "" || topic.Category == "" {
		t.Fatalf("topic incomplete: %+v", topic)
	}

	if _, ok := reg.Get("no-such-topic"); ok {
		t.Fatal("unknown slug resolved to a topic")
	}
}
