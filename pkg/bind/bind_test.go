package bind

import (
	"errors"
	"reflect"
	"testing"

	"github.com/funvibe/funseq/pkg/seq"
)

func intThunk(n int) func() interface{} {
	return func() interface{} { return n }
}

func TestShapeSetValidation(t *testing.T) {
	tests := []struct {
		name     string
		variants []ParameterShape
		wantErr  bool
	}{
		{
			name: "duplicate fixed count",
			variants: []ParameterShape{
				{Positional: []string{"x"}},
				{Positional: []string{"x", "y"}},
				{Positional: []string{"x", "y"}, Rest: "more"},
			},
			wantErr: true,
		},
		{
			name: "valid ladder",
			variants: []ParameterShape{
				{Positional: []string{"x"}},
				{Positional: []string{"x", "y"}},
				{Positional: []string{"x", "y", "z"}, Rest: "more"},
			},
		},
		{
			name:     "no variants",
			variants: nil,
			wantErr:  true,
		},
		{
			name: "two rest variants",
			variants: []ParameterShape{
				{Positional: []string{"x"}, Rest: "a"},
				{Positional: []string{"x", "y"}, Rest: "b"},
			},
			wantErr: true,
		},
		{
			name: "rest variant below maximum arity",
			variants: []ParameterShape{
				{Positional: []string{"x"}, Rest: "more"},
				{Positional: []string{"x", "y"}},
			},
			wantErr: true,
		},
		{
			name: "duplicate name inside a shape",
			variants: []ParameterShape{
				{Positional: []string{"x", "x"}},
			},
			wantErr: true,
		},
		{
			name: "rest name collides with positional",
			variants: []ParameterShape{
				{Positional: []string{"x"}, Rest: "x"},
			},
			wantErr: true,
		},
		{
			name: "keyword name collides with positional",
			variants: []ParameterShape{
				{Positional: []string{"x"}, Keywords: []KeywordSpec{{Name: "x"}}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShapeSet(tt.variants...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewShapeSet error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var se *ShapeError
				if !errors.As(err, &se) {
					t.Errorf("got %T, want *ShapeError", err)
				}
			}
		})
	}
}

func TestArityResolution(t *testing.T) {
	shapes := MustShapeSet(
		ParameterShape{Positional: []string{"x"}},
		ParameterShape{Positional: []string{"x", "y"}},
		ParameterShape{Positional: []string{"x", "y", "z"}, Rest: "more"},
	)

	tests := []struct {
		name        string
		positionals []interface{}
		want        map[string]interface{}
		wantRest    []interface{} // nil means no rest binding expected
	}{
		{
			name:        "exact one",
			positionals: []interface{}{7},
			want:        map[string]interface{}{"x": 7},
		},
		{
			name:        "exact two",
			positionals: []interface{}{7, 8},
			want:        map[string]interface{}{"x": 7, "y": 8},
		},
		{
			name:        "exact three takes the rest variant with empty capture",
			positionals: []interface{}{7, 8, 9},
			want:        map[string]interface{}{"x": 7, "y": 8, "z": 9},
			wantRest:    []interface{}{},
		},
		{
			name:        "overflow into rest",
			positionals: []interface{}{7, 8, 9, 10, 11},
			want:        map[string]interface{}{"x": 7, "y": 8, "z": 9},
			wantRest:    []interface{}{10, 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BindCall(shapes, tt.positionals, nil, Options{})
			if err != nil {
				t.Fatalf("BindCall: %v", err)
			}
			for name, want := range tt.want {
				got, ok := args.Get(name)
				if !ok || got != want {
					t.Errorf("%s = %v (ok=%v), want %v", name, got, ok, want)
				}
			}
			rest, ok := args.Get("more")
			if tt.wantRest == nil {
				if ok {
					t.Errorf("unexpected rest binding %v", rest)
				}
				return
			}
			restSeq, isSeq := rest.(*seq.Linked)
			if !isSeq {
				t.Fatalf("rest binding is %T, want *seq.Linked", rest)
			}
			if !reflect.DeepEqual(restSeq.ToSlice(), tt.wantRest) {
				t.Errorf("rest = %v, want %v", restSeq.ToSlice(), tt.wantRest)
			}
		})
	}
}

func TestArityMismatch(t *testing.T) {
	shapes := MustShapeSet(
		ParameterShape{Positional: []string{"x", "y"}},
		ParameterShape{Positional: []string{"x", "y", "z"}},
	)

	for _, k := range []int{0, 1, 4} {
		positionals := make([]interface{}, k)
		_, err := BindCall(shapes, positionals, nil, Options{})
		var am *ArityMismatchError
		if !errors.As(err, &am) {
			t.Fatalf("k=%d: got %v, want *ArityMismatchError", k, err)
		}
		if am.Got != k {
			t.Errorf("k=%d: error Got = %d", k, am.Got)
		}
		if !reflect.DeepEqual(am.Fixed, []int{2, 3}) {
			t.Errorf("k=%d: error Fixed = %v, want [2 3]", k, am.Fixed)
		}
		if am.Rest != -1 {
			t.Errorf("k=%d: error Rest = %d, want -1", k, am.Rest)
		}
	}
}

// A variant body may call the same callable again with a transformed
// argument list; default-filling across the arity ladder is ordinary
// recursion, not binder magic. foo(x) -> foo(x, 1) -> foo(x, 1, 2).
func TestArityLadderRecursion(t *testing.T) {
	shapes := MustShapeSet(
		ParameterShape{Positional: []string{"x"}},
		ParameterShape{Positional: []string{"x", "y"}},
		ParameterShape{Positional: []string{"x", "y", "z"}},
	)

	var foo func(positionals ...interface{}) []interface{}
	foo = func(positionals ...interface{}) []interface{} {
		args, err := BindCall(shapes, positionals, nil, Options{})
		if err != nil {
			t.Fatalf("BindCall(%v): %v", positionals, err)
		}
		switch len(positionals) {
		case 1:
			x, _ := args.Get("x")
			return foo(x, 1)
		case 2:
			x, _ := args.Get("x")
			y, _ := args.Get("y")
			return foo(x, y, 2)
		default:
			x, _ := args.Get("x")
			y, _ := args.Get("y")
			z, _ := args.Get("z")
			return []interface{}{x, y, z}
		}
	}

	viaDefaults := foo(0)
	direct := foo(0, 1, 2)
	if !reflect.DeepEqual(viaDefaults, direct) {
		t.Errorf("foo(0) = %v, foo(0,1,2) = %v; want equal", viaDefaults, direct)
	}
	if !reflect.DeepEqual(viaDefaults, []interface{}{0, 1, 2}) {
		t.Errorf("foo(0) = %v, want [0 1 2]", viaDefaults)
	}
}

func TestKeywordDefaults(t *testing.T) {
	shapes := MustShapeSet(ParameterShape{
		Keywords: []KeywordSpec{
			{Name: "name"},
			{Name: "age", Default: intThunk(18)},
			{Name: "weight", Default: intThunk(150)},
		},
	})

	args, err := BindCall(shapes, nil, []interface{}{"name", "Tim"}, Options{})
	if err != nil {
		t.Fatalf("BindCall: %v", err)
	}
	want := map[string]interface{}{"name": "Tim", "age": 18, "weight": 150}
	for k, v := range want {
		got, _ := args.Get(k)
		if got != v {
			t.Errorf("%s = %v, want %v", k, got, v)
		}
	}
}

func TestKeywordAbsent(t *testing.T) {
	shapes := MustShapeSet(ParameterShape{
		Keywords: []KeywordSpec{{Name: "label"}, {Name: "tag"}},
	})

	args, err := BindCall(shapes, nil, []interface{}{"tag", nil}, Options{})
	if err != nil {
		t.Fatalf("BindCall: %v", err)
	}

	// Unsupplied without default: bound, but to the Absent marker.
	label, ok := args.Get("label")
	if !ok {
		t.Fatal("label should be bound")
	}
	if !IsAbsent(label) {
		t.Errorf("label = %v, want Absent", label)
	}
	if args.Bound("label") {
		t.Error("Bound(label) = true, want false")
	}

	// Supplied as nil is distinct from Absent.
	tag, _ := args.Get("tag")
	if IsAbsent(tag) {
		t.Error("tag supplied as nil must not read as Absent")
	}
	if !args.Bound("tag") {
		t.Error("Bound(tag) = false, want true")
	}
}

func TestKeywordEdgeCases(t *testing.T) {
	shapes := MustShapeSet(ParameterShape{
		Keywords: []KeywordSpec{{Name: "a", Default: intThunk(1)}},
	})

	t.Run("odd trailing element", func(t *testing.T) {
		_, err := BindCall(shapes, nil, []interface{}{"a", 2, "b"}, Options{})
		var mk *MalformedKeywordArgsError
		if !errors.As(err, &mk) || !mk.Odd {
			t.Errorf("got %v, want odd *MalformedKeywordArgsError", err)
		}
	})

	t.Run("non-string key", func(t *testing.T) {
		_, err := BindCall(shapes, nil, []interface{}{42, 2}, Options{})
		var mk *MalformedKeywordArgsError
		if !errors.As(err, &mk) || mk.BadKey != 42 {
			t.Errorf("got %v, want bad-key *MalformedKeywordArgsError", err)
		}
	})

	t.Run("unrecognized key ignored by default", func(t *testing.T) {
		args, err := BindCall(shapes, nil, []interface{}{"zap", 9}, Options{})
		if err != nil {
			t.Fatalf("BindCall: %v", err)
		}
		if a, _ := args.Get("a"); a != 1 {
			t.Errorf("a = %v, want default 1", a)
		}
		if _, ok := args.Get("zap"); ok {
			t.Error("unrecognized key must not bind")
		}
	})

	t.Run("unrecognized key rejected in strict mode", func(t *testing.T) {
		_, err := BindCall(shapes, nil, []interface{}{"zap", 9}, Options{StrictKeywords: true})
		var mk *MalformedKeywordArgsError
		if !errors.As(err, &mk) || mk.Key != "zap" {
			t.Errorf("got %v, want *MalformedKeywordArgsError for zap", err)
		}
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		args, err := BindCall(shapes, nil, []interface{}{"a", 10, "a", 20}, Options{})
		if err != nil {
			t.Fatalf("BindCall: %v", err)
		}
		if a, _ := args.Get("a"); a != 10 {
			t.Errorf("a = %v, want first occurrence 10", a)
		}
	})

	t.Run("default thunk runs per call", func(t *testing.T) {
		calls := 0
		counting := MustShapeSet(ParameterShape{
			Keywords: []KeywordSpec{{Name: "n", Default: func() interface{} { calls++; return calls }}},
		})
		for want := 1; want <= 2; want++ {
			args, err := BindCall(counting, nil, nil, Options{})
			if err != nil {
				t.Fatalf("BindCall: %v", err)
			}
			if n, _ := args.Get("n"); n != want {
				t.Errorf("n = %v, want %d", n, want)
			}
		}
	})
}

func TestPositionalsAndKeywordsTogether(t *testing.T) {
	shapes := MustShapeSet(ParameterShape{
		Positional: []string{"target"},
		Rest:       "extras",
		Keywords:   []KeywordSpec{{Name: "mode", Default: func() interface{} { return "scan" }}},
	})

	args, err := BindCall(shapes,
		[]interface{}{"alpha", "beta", "gamma"},
		[]interface{}{"mode", "sweep"},
		Options{})
	if err != nil {
		t.Fatalf("BindCall: %v", err)
	}
	if target, _ := args.Get("target"); target != "alpha" {
		t.Errorf("target = %v", target)
	}
	extras, _ := args.Get("extras")
	if !reflect.DeepEqual(extras.(*seq.Linked).ToSlice(), []interface{}{"beta", "gamma"}) {
		t.Errorf("extras = %v", extras)
	}
	if mode, _ := args.Get("mode"); mode != "sweep" {
		t.Errorf("mode = %v, want sweep", mode)
	}
}

func FuzzResolveKeywords(f *testing.F) {
	f.Add(3, "name", true)
	f.Add(0, "age", false)
	f.Add(7, "zap", true)

	shapes := MustShapeSet(ParameterShape{
		Keywords: []KeywordSpec{
			{Name: "name"},
			{Name: "age", Default: intThunk(18)},
		},
	})

	f.Fuzz(func(t *testing.T, n int, key string, strict bool) {
		n &= 7
		remainder := make([]interface{}, n)
		for i := range remainder {
			if i%2 == 0 {
				remainder[i] = key
			} else {
				remainder[i] = i
			}
		}

		args, err := BindCall(shapes, nil, remainder, Options{StrictKeywords: strict})
		if n%2 != 0 {
			var mk *MalformedKeywordArgsError
			if !errors.As(err, &mk) {
				t.Fatalf("odd region: got %v, want *MalformedKeywordArgsError", err)
			}
			return
		}
		if err != nil {
			var mk *MalformedKeywordArgsError
			if !errors.As(err, &mk) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		// Every declared keyword must come out bound to something.
		for _, want := range []string{"name", "age"} {
			if _, ok := args.Get(want); !ok {
				t.Errorf("keyword %s unbound", want)
			}
		}
	})
}
