package taxonomy

import "testing"

func TestVerifyCatalog(t *testing.T) {
	if err := VerifyCatalog(); err != nil {
		t.Fatalf("catalog inconsistent with type registry: %v", err)
	}
}

func TestValidateObjective(t *testing.T) {
	v := NewValidator(1008)

	cases := []struct {
		name   string
		kind   string
		params Params
		want   bool
	}{
		{"simple quantity", "catch", Params{"quantity": 3}, true},
		{"quantity of one", "catch", Params{"quantity": 1}, true},
		{"zero quantity", "catch", Params{"quantity": 0}, false},
		{"json float quantity", "catch", Params{"quantity": float64(3)}, true},
		{"fractional quantity", "catch", Params{"quantity": 2.5}, false},
		{"unknown kind", "dance", Params{"quantity": 1}, false},
		{"missing slot", "catch_type", Params{"quantity": 3}, false},
		{"extraneous param", "catch", Params{"quantity": 3, "type": []any{"water"}}, false},
		{"type set", "catch_type", Params{"type": []any{"water", "fire"}, "quantity": 3}, true},
		{"bad type name", "catch_type", Params{"type": []any{"wet"}, "quantity": 3}, false},
		{"duplicate type", "catch_type", Params{"type": []any{"water", "water"}, "quantity": 3}, false},
		{"four types", "catch_type", Params{"type": []any{"water", "fire", "grass", "bug"}, "quantity": 3}, false},
		{"species set", "catch_specific", Params{"species": []any{25, 26}, "quantity": 2}, true},
		{"species above max", "catch_specific", Params{"species": []any{2000}, "quantity": 1}, false},
		{"duplicate species", "catch_specific", Params{"species": []any{25, 25}, "quantity": 1}, false},
		{"tier in range", "level_raid", Params{"min_tier": 3, "quantity": 1}, true},
		{"tier out of range", "level_raid", Params{"min_tier": 6, "quantity": 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ValidateObjective(tc.kind, tc.params); got != tc.want {
				t.Fatalf("ValidateObjective(%q, %v) = %v, want %v", tc.kind, tc.params, got, tc.want)
			}
		})
	}
}

func TestValidateRespectsScope(t *testing.T) {
	v := NewValidator(1008)

	// min_tier is objective-only; no reward kind declares it, and a reward
	// smuggling it in must fail.
	if v.ValidateReward("stardust", Params{"min_tier": 3}) {
		t.Fatal("expected reward with objective-only parameter to be invalid")
	}
	if !v.ValidateReward("encounter", Params{"species": []any{133}}) {
		t.Fatal("expected encounter reward to validate")
	}
	if v.ValidateObjective("encounter", Params{"species": []any{133}}) {
		t.Fatal("reward kind must not validate in objective scope")
	}
}

func TestMatchesSubsetSemantics(t *testing.T) {
	instance := Instance{Kind: "catch", Params: Params{"quantity": 5}}

	// A filter on kind alone matches any quantity.
	if !Matches(instance, Instance{Kind: "catch", Params: Params{}}) {
		t.Fatal("kind-only filter should match")
	}
	if !Matches(instance, Instance{Kind: "catch"}) {
		t.Fatal("filter with nil params should match")
	}
	if Matches(instance, Instance{Kind: "hatch", Params: Params{}}) {
		t.Fatal("different kind must not match")
	}
	if !Matches(instance, Instance{Kind: "catch", Params: Params{"quantity": 5}}) {
		t.Fatal("equal param should match")
	}
	if Matches(instance, Instance{Kind: "catch", Params: Params{"quantity": 3}}) {
		t.Fatal("unequal param must not match")
	}
	// Filter params absent from the instance fail the match.
	if Matches(instance, Instance{Kind: "catch", Params: Params{"type": []any{"water"}}}) {
		t.Fatal("filter param missing from instance must not match")
	}
}

func TestMatchesCrossDecoderRepresentations(t *testing.T) {
	// Instance params as the JSON decoder yields them, filter as yaml does.
	instance := Instance{Kind: "catch_type", Params: Params{
		"type":     []any{"water"},
		"quantity": float64(3),
	}}
	filter := Instance{Kind: "catch_type", Params: Params{
		"quantity": 3,
	}}
	if !Matches(instance, filter) {
		t.Fatal("json float and yaml int must compare equal")
	}
}

func TestMatchesSetOrderMatters(t *testing.T) {
	instance := Instance{Kind: "catch_type", Params: Params{
		"type":     []string{"water", "fire"},
		"quantity": 3,
	}}
	if !Matches(instance, Instance{Kind: "catch_type", Params: Params{"type": []any{"water", "fire"}}}) {
		t.Fatal("same order should match")
	}
	// Element-wise positional equality: reordering breaks the match.
	if Matches(instance, Instance{Kind: "catch_type", Params: Params{"type": []any{"fire", "water"}}}) {
		t.Fatal("reordered set must not match")
	}
}

func TestNormalizeCanonicalForms(t *testing.T) {
	v := NewValidator(1008)
	out := v.Normalize(Params{
		"quantity": float64(3),
		"species":  []any{float64(25), 133},
		"type":     []any{"water"},
	})
	if q, ok := out["quantity"].(int); !ok || q != 3 {
		t.Fatalf("quantity not canonical: %#v", out["quantity"])
	}
	ids, ok := out["species"].([]int)
	if !ok || len(ids) != 2 || ids[0] != 25 || ids[1] != 133 {
		t.Fatalf("species not canonical: %#v", out["species"])
	}
	if _, ok := out["type"].([]string); !ok {
		t.Fatalf("type not canonical: %#v", out["type"])
	}
}
