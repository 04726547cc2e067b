package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The engine behind Gin's binding reads constraints from the binding tag.
type sampleRequest struct {
	Titre       string   `json:"titre" binding:"required,notblank,trimmin=3,trimmax=100"`
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,notblank"`
	Email       string   `json:"email" binding:"omitempty,email"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestToDetails_CollectsAllViolations(t *testing.T) {
	v := engine(t)

	err := v.Struct(sampleRequest{
		Titre:       "ab",
		Ingredients: []string{"pommes", "  "},
		Email:       "pas-un-email",
	})
	require.Error(t, err)

	details := ToDetails(err)
	require.Len(t, details, 3)

	byField := map[string]FieldError{}
	for _, d := range details {
		byField[d.Champ] = d
	}

	assert.Equal(t, "doit contenir au moins 3 caractères", byField["titre"].Message)
	assert.Equal(t, "ab", byField["titre"].Valeur)
	assert.Equal(t, "ne peut pas être vide", byField["ingredients[1]"].Message)
	assert.Equal(t, "doit être un email valide", byField["email"].Message)
}

func TestToDetails_FrenchMessages(t *testing.T) {
	v := engine(t)

	tests := []struct {
		name      string
		in        sampleRequest
		wantChamp string
		wantMsg   string
	}{
		{
			name:      "required",
			in:        sampleRequest{Ingredients: []string{"pommes"}},
			wantChamp: "titre",
			wantMsg:   "ne peut pas être vide",
		},
		{
			name:      "notblank",
			in:        sampleRequest{Titre: "    ", Ingredients: []string{"pommes"}},
			wantChamp: "titre",
			wantMsg:   "ne peut pas être vide",
		},
		{
			name:      "short after trimming",
			in:        sampleRequest{Titre: "  ab  ", Ingredients: []string{"pommes"}},
			wantChamp: "titre",
			wantMsg:   "doit contenir au moins 3 caractères",
		},
		{
			name:      "too long after trimming",
			in:        sampleRequest{Titre: "  " + strings.Repeat("a", 101) + "  ", Ingredients: []string{"pommes"}},
			wantChamp: "titre",
			wantMsg:   "ne peut pas dépasser 100 caractères",
		},
		{
			name:      "padding around a valid length is fine",
			in:        sampleRequest{Titre: "  Tarte  ", Ingredients: []string{"pommes"}},
			wantChamp: "",
		},
		{
			name:      "empty slice",
			in:        sampleRequest{Titre: "Tarte", Ingredients: []string{}},
			wantChamp: "ingredients",
			wantMsg:   "doit contenir au moins 1 élément(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantChamp == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			details := ToDetails(err)
			require.NotEmpty(t, details)
			assert.Equal(t, tt.wantChamp, details[0].Champ)
			assert.Equal(t, tt.wantMsg, details[0].Message)
		})
	}
}

func TestToDetails_MalformedJSON(t *testing.T) {
	var target sampleRequest

	t.Run("syntax error", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"titre":}`), &target)
		require.Error(t, err)

		details := ToDetails(err)
		require.Len(t, details, 1)
		assert.Equal(t, "payload", details[0].Champ)
		assert.Equal(t, "JSON invalide", details[0].Message)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"titre":12}`), &target)
		require.Error(t, err)

		details := ToDetails(err)
		require.Len(t, details, 1)
		assert.Equal(t, "titre", details[0].Champ)
		assert.Equal(t, "type invalide", details[0].Message)
	})
}

func TestToDetails_NilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
