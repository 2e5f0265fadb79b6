package pgp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	pair, err := GenerateKeyPair("staybook", "receipts@staybook.test", "correct horse")
	require.NoError(t, err)

	signer, err := NewSigner(pair.PrivateKey, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, signer.PublicKey())

	data := `{"reservation_id":"r1","total_price":300}`
	sig, err := signer.Sign(data)
	require.NoError(t, err)
	assert.Contains(t, sig, "BEGIN PGP SIGNATURE")

	assert.NoError(t, VerifyData(data, sig, pair.PublicKey))
	assert.Error(t, VerifyData(`{"reservation_id":"r1","total_price":1}`, sig, pair.PublicKey))
}

func TestSignWrongPassphrase(t *testing.T) {
	pair, err := GenerateKeyPair("staybook", "receipts@staybook.test", "correct horse")
	require.NoError(t, err)

	_, err = SignData("data", pair.PrivateKey, []byte("battery staple"))
	assert.Error(t, err)
}

func TestNewSignerInvalidKey(t *testing.T) {
	_, err := NewSigner("not a key", nil)
	assert.Error(t, err)
}
