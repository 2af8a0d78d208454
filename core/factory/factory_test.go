package factory

import "testing"

type widget struct{ Name string }

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*widget]()
	err := reg.Register("basic", func(conf map[string]any) (*widget, error) {
		var c struct {
			Name string `json:"name"`
		}
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &widget{Name: c.Name}, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("basic", nil); err == nil {
		t.Fatalf("nil factory accepted")
	}
	w, err := reg.Create(ModuleConfig{Type: "basic", Conf: map[string]any{"name": "a"}})
	if err != nil || w.Name != "a" {
		t.Fatalf("create: %v %#v", err, w)
	}
	if _, err := reg.Create(ModuleConfig{Type: "missing"}); err == nil {
		t.Fatalf("unknown type accepted")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "basic" {
		t.Fatalf("names = %v", names)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry[int]()
	f := func(map[string]any) (int, error) { return 1, nil }
	if err := reg.Register("dup", f); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("dup", f); err == nil {
		t.Fatalf("duplicate registration accepted")
	}
}
