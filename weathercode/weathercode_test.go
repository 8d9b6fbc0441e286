package weathercode

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Céu Limpo"},
		{1, "Predom. Limpo"},
		{2, "Parcial. Nublado"},
		{3, "Nublado"},
		{45, "Nevoeiro"},
		{48, "Nevoeiro Gelo"},
		{51, "Garoa Leve"},
		{53, "Garoa Mod."},
		{55, "Garoa Densa"},
		{61, "Chuva Fraca"},
		{63, "Chuva Mod."},
		{65, "Chuva Forte"},
		{80, "Pancadas Chuva"},
		{95, "Trovoada"},
		{96, "Trovoada c/ Granizo"},
	}

	for _, tt := range tests {
		if got := Label(tt.code); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLabelUnknown(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 56, 71, 81, 99, 1000} {
		if got := Label(code); got != Unknown {
			t.Errorf("Label(%d) = %q, want %q", code, got, Unknown)
		}
	}
}

func TestCodeString(t *testing.T) {
	if got := Code(3).String(); got != "Nublado" {
		t.Errorf("Code(3).String() = %q", got)
	}
}
