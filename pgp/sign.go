package pgp

import (
	"fmt"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/labstack/gommon/log"
)

// Signer makes detached armored signatures with one private key.
type Signer struct {
	privateKey string
	passphrase []byte
	publicKey  string
}

func NewSigner(privateKey string, passphrase []byte) (*Signer, error) {
	pub, err := PublicKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}

	return &Signer{privateKey: privateKey, passphrase: passphrase, publicKey: pub}, nil
}

func (s *Signer) PublicKey() string {
	return s.publicKey
}

func (s *Signer) Sign(data string) (string, error) {
	return SignData(data, s.privateKey, s.passphrase)
}

func SignData(data string, privateKey string, passphrase []byte) (string, error) {
	log.Debugf("Signing %d bytes", len(data))
	privateKeyObj, err := crypto.NewKeyFromArmored(privateKey)
	if err != nil {
		return "", err
	}

	unlockedKeyObj, err := privateKeyObj.Unlock(passphrase)
	if err != nil {
		return "", err
	}

	var message = crypto.NewPlainMessageFromString(data)
	signingKeyRing, err := crypto.NewKeyRing(unlockedKeyObj)
	if err != nil {
		return "", err
	}

	pgpSignature, err := signingKeyRing.SignDetached(message)
	if err != nil {
		return "", err
	}

	armored, err := pgpSignature.GetArmored()
	if err != nil {
		return "", err
	}

	return armored, nil
}

// VerifyData checks an armored detached signature against data.
func VerifyData(data, armoredSignature, publicKey string) error {
	pubKeyObj, err := crypto.NewKeyFromArmored(publicKey)
	if err != nil {
		return err
	}

	keyRing, err := crypto.NewKeyRing(pubKeyObj)
	if err != nil {
		return err
	}

	signature, err := crypto.NewPGPSignatureFromArmored(armoredSignature)
	if err != nil {
		return err
	}

	return keyRing.VerifyDetached(crypto.NewPlainMessageFromString(data), signature, crypto.GetUnixTime())
}
