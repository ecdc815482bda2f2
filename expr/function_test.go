package expr

import (
	"errors"
	"math"
	"testing"
)

func TestFunctionRegistry(t *testing.T) {
	r := NewFunctionRegistry()
	r.Register(&SumFunc{})

	if _, ok := r.Get("sum"); !ok {
		t.Error("Get(sum) not found after Register")
	}
	if _, ok := r.Get("SUM"); ok {
		t.Error("Get(SUM) found, want case-sensitive lookup")
	}
	if _, err := r.Call("missing", nil); !errors.Is(err, ErrUndefinedName) {
		t.Errorf("Call(missing) error = %v, want %v", err, ErrUndefinedName)
	}
	if _, err := r.Call("sum", nil); !errors.Is(err, ErrArity) {
		t.Errorf("Call(sum) with no args error = %v, want %v", err, ErrArity)
	}
	if names := r.Names(); len(names) != 1 || names[0] != "sum" {
		t.Errorf("Names() = %v, want [sum]", names)
	}
}

func TestRoundFunc(t *testing.T) {
	fn := &RoundFunc{}

	tests := []struct {
		name    string
		args    []interface{}
		want    interface{}
		wantErr bool
	}{
		{"default decimals", []interface{}{3.14159}, 3.0, false},
		{"two decimals", []interface{}{3.14159, 2.0}, 3.14, false},
		{"half to even down", []interface{}{0.5}, 0.0, false},
		{"half to even up", []interface{}{1.5}, 2.0, false},
		{"negative decimals", []interface{}{1250.0, -2.0}, 1200.0, false},
		{"infinity passes through", []interface{}{math.Inf(1)}, math.Inf(1), false},
		{"fractional decimals", []interface{}{1.0, 0.5}, nil, true},
		{"decimal representation tie", []interface{}{2.675, 2.0}, 2.68, false},
		{"huge decimals keep value", []interface{}{1.5e-300, 1e6}, 1.5e-300, false},
		{"huge negative decimals give zero", []interface{}{1.7e308, -1e6}, 0.0, false},
		{"decimals beyond int32", []interface{}{2.5, 4294967296.0}, 2.5, false},
		{"decimals beyond exact integers", []interface{}{1.0, 1e30}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fn.Evaluate(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("RoundFunc.Evaluate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RoundFunc.Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundFunc_Array(t *testing.T) {
	got, err := (&RoundFunc{}).Evaluate([]interface{}{[]float64{0.5, 1.5, 2.5, -0.5}})
	if err != nil {
		t.Fatalf("RoundFunc.Evaluate() error = %v", err)
	}
	if !allClose(got, []float64{0, 2, 2, 0}) {
		t.Errorf("RoundFunc.Evaluate() = %v, want [0 2 2 0]", got)
	}
}

func TestArangeFunc(t *testing.T) {
	fn := &ArangeFunc{}

	tests := []struct {
		name    string
		args    []interface{}
		want    []float64
		wantErr bool
	}{
		{"stop only", []interface{}{3.0}, []float64{0, 1, 2}, false},
		{"start and stop", []interface{}{2.0, 5.0}, []float64{2, 3, 4}, false},
		{"fractional step", []interface{}{0.0, 2.0, 0.5}, []float64{0, 0.5, 1, 1.5}, false},
		{"negative step", []interface{}{3.0, 0.0, -1.0}, []float64{3, 2, 1}, false},
		{"empty range", []interface{}{5.0, 1.0}, []float64{}, false},
		{"zero step", []interface{}{0.0, 1.0, 0.0}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fn.Evaluate(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("ArangeFunc.Evaluate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !allClose(got, tt.want) {
				t.Errorf("ArangeFunc.Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinspaceFunc(t *testing.T) {
	got, err := (&LinspaceFunc{}).Evaluate([]interface{}{0.0, 1.0, 5.0})
	if err != nil {
		t.Fatalf("LinspaceFunc.Evaluate() error = %v", err)
	}
	if !allClose(got, []float64{0, 0.25, 0.5, 0.75, 1}) {
		t.Errorf("LinspaceFunc.Evaluate() = %v", got)
	}

	def, err := (&LinspaceFunc{}).Evaluate([]interface{}{0.0, 1.0})
	if err != nil {
		t.Fatalf("LinspaceFunc.Evaluate() error = %v", err)
	}
	if n := len(def.([]float64)); n != 50 {
		t.Errorf("LinspaceFunc.Evaluate() default length = %d, want 50", n)
	}
}

func TestSortFunc_NaNLast(t *testing.T) {
	got, err := (&SortFunc{}).Evaluate([]interface{}{[]float64{3, math.NaN(), 1}})
	if err != nil {
		t.Fatalf("SortFunc.Evaluate() error = %v", err)
	}
	values := got.([]float64)
	if values[0] != 1 || values[1] != 3 || !math.IsNaN(values[2]) {
		t.Errorf("SortFunc.Evaluate() = %v, want [1 3 NaN]", values)
	}
}

func TestInterpFunc_Clamps(t *testing.T) {
	xp := []float64{0, 1}
	fp := []float64{10, 20}

	got, err := (&InterpFunc{}).Evaluate([]interface{}{[]float64{-1, 0.5, 2}, xp, fp})
	if err != nil {
		t.Fatalf("InterpFunc.Evaluate() error = %v", err)
	}
	if !allClose(got, []float64{10, 15, 20}) {
		t.Errorf("InterpFunc.Evaluate() = %v, want [10 15 20]", got)
	}

	_, err = (&InterpFunc{}).Evaluate([]interface{}{0.5, xp, []float64{1}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("InterpFunc.Evaluate() error = %v, want %v", err, ErrLengthMismatch)
	}
}

func TestExtremumFunc(t *testing.T) {
	fn := &extremumFunc{name: "min", better: func(a, b float64) bool { return a < b }}

	tests := []struct {
		name    string
		args    []interface{}
		want    float64
		wantErr error
	}{
		{"array", []interface{}{[]float64{3, -1, 2}}, -1, nil},
		{"scalars", []interface{}{3.0, 1.0, 2.0}, 1, nil},
		{"empty", []interface{}{[]float64{}}, 0, ErrType},
		{"single scalar", []interface{}{3.0}, 0, ErrType},
		{"several arrays", []interface{}{[]float64{1}, []float64{2}}, 0, ErrAmbiguousTruth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fn.Evaluate(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("extremumFunc.Evaluate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("extremumFunc.Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("extremumFunc.Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilledFunc_RejectsNegative(t *testing.T) {
	if _, err := (&filledFunc{name: "ones", value: 1}).Evaluate([]interface{}{-1.0}); err == nil {
		t.Error("ones(-1) error = nil, want error")
	}
}

func TestBroadcastLength(t *testing.T) {
	tests := []struct {
		name    string
		arrays  [][]float64
		want    int
		wantErr bool
	}{
		{"equal", [][]float64{{1, 2}, {3, 4}}, 2, false},
		{"one broadcasts", [][]float64{{1}, {3, 4, 5}}, 3, false},
		{"one against empty", [][]float64{{1}, {}}, 0, false},
		{"empty against three", [][]float64{{}, {1, 2, 3}}, 0, true},
		{"two against three", [][]float64{{1, 2}, {1, 2, 3}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := broadcastLength(tt.arrays...)
			if (err != nil) != tt.wantErr {
				t.Errorf("broadcastLength() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("broadcastLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    bool
		wantErr bool
	}{
		{"nil", nil, false, false},
		{"zero", 0.0, false, false},
		{"nonzero", 2.0, true, false},
		{"empty string", "", false, false},
		{"single element array", []float64{1}, true, false},
		{"single false", []bool{false}, false, false},
		{"long array", []float64{1, 1}, false, true},
		{"empty array", []float64{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Truthy(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Truthy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}
