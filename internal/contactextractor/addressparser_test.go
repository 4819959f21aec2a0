// File: backend/internal/contactextractor/addressparser_test.go
package contactextractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressEstablishmentLed(t *testing.T) {
	parsed := ParseAddress("Hotel Le Meurice, 228 rue de Rivoli, 75001 Paris")

	assert.Equal(t, "228 rue de Rivoli", parsed.Street)
	assert.Equal(t, "Paris", parsed.City)
	assert.Equal(t, "75001", parsed.PostalCode)
	assert.Equal(t, "France", parsed.Country)
}

func TestParseAddressStreetFirst(t *testing.T) {
	parsed := ParseAddress("Calle Gran Vía 28, 28013 Madrid, Spain")

	assert.Equal(t, "Calle Gran Vía 28", parsed.Street)
	assert.Equal(t, "Madrid", parsed.City)
	assert.Equal(t, "28013", parsed.PostalCode)
	assert.Equal(t, "Spain", parsed.Country)
}

func TestParseAddressStreetFirstNoCountry(t *testing.T) {
	parsed := ParseAddress("12 rue de la Paix, 75002 Paris")

	assert.Equal(t, "12 rue de la Paix", parsed.Street)
	assert.Equal(t, "Paris", parsed.City)
	assert.Equal(t, "75002", parsed.PostalCode)
	assert.Equal(t, "France", parsed.Country)
}

func TestParseAddressCityFromGazetteer(t *testing.T) {
	parsed := ParseAddress("Avenida Diagonal 211 Barcelona")

	assert.Equal(t, "Barcelona", parsed.City)
	assert.Equal(t, "Spain", parsed.Country)
}

func TestParseAddressPostalCodeValidated(t *testing.T) {
	// 12345 is an ascending run and must not be taken as a postal code.
	parsed := ParseAddress("Oak Street 4, reference 12345 somewhere")
	assert.Empty(t, parsed.PostalCode)
}

func TestParseAddressStreetFallbackBeforeComma(t *testing.T) {
	parsed := ParseAddress("742 Evergreen Terrace 88, Springfield area near the mall")
	assert.Equal(t, "742 Evergreen Terrace 88", parsed.Street)
}

func TestInferCountryWholeTokenOnly(t *testing.T) {
	assert.Equal(t, "", InferCountry("annual ukulele festival lineup"))
	assert.Equal(t, "United Kingdom", InferCountry("registered in the uk"))
	assert.Equal(t, "Spain", InferCountry("Oficina central, Madrid"))
	assert.Equal(t, "", InferCountry("no geography here"))
}

func TestParseAddressShortStreetDiscarded(t *testing.T) {
	parsed := ParseAddress("ab, 28013 Madrid")
	assert.Empty(t, parsed.Street)
}
