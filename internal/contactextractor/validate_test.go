// File: backend/internal/contactextractor/validate_test.go
package contactextractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCandidate(t *testing.T) {
	assert.Equal(t, "Calle Mayor 1, 28013 Madrid",
		CleanCandidate("  <span>Calle Mayor 1,\n 28013   Madrid</span> "))
	assert.Equal(t, "Calle Mayor 1", CleanCandidate(`"Calle Mayor 1"`))
	assert.Equal(t, "Tom & Jerry Diner", CleanCandidate("Tom &amp; Jerry Diner"))
}

func TestIsAddressContent(t *testing.T) {
	assert.True(t, IsAddressContent("Calle Gran Vía 28, 28013 Madrid"))

	// Needs both a letter and a digit.
	assert.False(t, IsAddressContent("Calle de la Esperanza"))
	// CSS/JS fragments are rejected outright.
	assert.False(t, IsAddressContent("padding 10px solid margin 28013"))
	assert.False(t, IsAddressContent("function foo 28013 Madrid"))
	// URL fragments never count as addresses.
	assert.False(t, IsAddressContent("https://maps.example.com/28013"))
	// Too short.
	assert.False(t, IsAddressContent("C/ M 1"))
}

func TestAddressBlacklistSyntheticValues(t *testing.T) {
	_, hit := matchesAny(AddressBlacklist, "Main Street 1234567, Springfield")
	assert.True(t, hit)

	_, hit = matchesAny(AddressBlacklist, "lorem ipsum dolor sit amet 28013")
	assert.True(t, hit)
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+33 1 44 58 10 10"))
	assert.True(t, ValidPhone("917 889 900"))

	// Too few digits.
	assert.False(t, ValidPhone("123 456"))
	// Sequential runs are synthetic.
	assert.False(t, ValidPhone("91 234 56 78"))
	// Repeated digit runs are synthetic.
	assert.False(t, ValidPhone("0000000"))
	// Timestamp-shaped numbers.
	assert.False(t, ValidPhone("20240115093000"))
}

func TestPhoneBlacklistRepeatedDigitRuns(t *testing.T) {
	assert.False(t, ValidPhone("9999999"))
	assert.False(t, ValidPhone("555 555 5555"))
	assert.True(t, ValidPhone("917 889 900"))
}

func TestPostalCodeBlacklistSameDigitRuns(t *testing.T) {
	for _, code := range []string{"00000", "11111", "22222", "33333", "44444", "55555", "66666", "77777", "88888", "99999"} {
		assert.False(t, ValidPostalCode(code), code)
	}
	assert.True(t, ValidPostalCode("28013"))
}

func TestBlacklistRulesExecute(t *testing.T) {
	// Every compiled rule must run cleanly over plain input.
	for _, rules := range [][]BlacklistRule{AddressBlacklist, PhoneBlacklist, EmailBlacklist, PostalCodeBlacklist, CityBlacklist} {
		for _, rule := range rules {
			assert.NotPanics(t, func() { rule.Pattern.MatchString("Calle Gran Vía 28, 28013 Madrid") }, rule.ID)
		}
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("info@lemeurice.com"))
	assert.True(t, ValidEmail("reservas@acmehotel.es"))

	assert.False(t, ValidEmail("test@example.com"))
	assert.False(t, ValidEmail("someone@acmehotel.com"))
	assert.False(t, ValidEmail("logo@2x.png"))
	assert.False(t, ValidEmail("a1b2c3d4e5f6a7b8@tracker.io"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("a@b.c"))
}

func TestValidPostalCode(t *testing.T) {
	assert.True(t, ValidPostalCode("28013"))
	assert.True(t, ValidPostalCode("75001"))

	assert.False(t, ValidPostalCode("12345"))
	assert.False(t, ValidPostalCode("00000"))
	assert.False(t, ValidPostalCode("2801"))
	assert.False(t, ValidPostalCode("28O13"))
}

func TestValidSocialHandle(t *testing.T) {
	assert.True(t, ValidSocialHandle("acme_hotel"))
	assert.True(t, ValidSocialHandle("AcmeHotelMadrid"))

	assert.False(t, ValidSocialHandle("login"))
	assert.False(t, ValidSocialHandle("sharer.php"))
	assert.False(t, ValidSocialHandle("wp-content"))
	assert.False(t, ValidSocialHandle("12345"))
	assert.False(t, ValidSocialHandle("p"))
}
