package einvoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressFull(t *testing.T) {
	parts, err := ParseAddress("Main St 1\n12345 Berlin\nFrance", AddressPolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, "Main St 1", parts.Street)
	assert.Equal(t, "12345", parts.PostalCode)
	assert.Equal(t, "Berlin", parts.City)
	assert.Equal(t, "France", parts.Country)
}

func TestParseAddressDefaultCountry(t *testing.T) {
	parts, err := ParseAddress("Main St 1\n12345 Berlin", AddressPolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, "DE", parts.Country)
}

func TestParseAddressGermanyCollapsesToDE(t *testing.T) {
	for _, country := range []string{"Germany", "germany", "GERMANY"} {
		parts, err := ParseAddress("Main St 1\n12345 Berlin\n"+country, AddressPolicyStrict)
		require.NoError(t, err)
		assert.Equal(t, "DE", parts.Country)
	}
}

func TestParseAddressTrimsAndDropsEmptyLines(t *testing.T) {
	parts, err := ParseAddress("  Main St 1  \n\n 12345 Berlin \n\n", AddressPolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, "Main St 1", parts.Street)
	assert.Equal(t, "Berlin", parts.City)
}

func TestParseAddressTooShort(t *testing.T) {
	_, err := ParseAddress("Main St 1", AddressPolicyStrict)
	require.Error(t, err)

	var addrErr *InvalidAddressError
	require.ErrorAs(t, err, &addrErr)
	assert.Contains(t, addrErr.Error(), "street and city")

	// The minimum-line requirement holds in lenient mode too.
	_, err = ParseAddress("Main St 1", AddressPolicyLenient)
	require.Error(t, err)
}

func TestParseAddressBadPostalLineStrict(t *testing.T) {
	_, err := ParseAddress("Main St 1\nBerlin", AddressPolicyStrict)
	require.Error(t, err)

	var addrErr *InvalidAddressError
	require.ErrorAs(t, err, &addrErr)
	assert.Contains(t, addrErr.Error(), "postal code")
}

func TestParseAddressBadPostalLineLenient(t *testing.T) {
	parts, err := ParseAddress("Main St 1\nBerlin", AddressPolicyLenient)
	require.NoError(t, err)

	assert.Equal(t, "Main St 1", parts.Street)
	assert.Empty(t, parts.PostalCode)
	assert.Equal(t, "Berlin", parts.City)
	assert.Equal(t, "DE", parts.Country)
}

func TestParseAddressFourDigitPostalCodeRejected(t *testing.T) {
	_, err := ParseAddress("Main St 1\n1234 Vienna", AddressPolicyStrict)
	require.Error(t, err)
}
