package pgp

import (
	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/ProtonMail/gopenpgp/v2/helper"
)

type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

func GenerateKeyPair(name, email, passphrase string) (KeyPair, error) {
	privKey, err := helper.GenerateKey(name, email, []byte(passphrase), "x25519", 0)
	if err != nil {
		return KeyPair{}, err
	}

	pubKey, err := PublicKey(privKey)
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{
		PrivateKey: privKey,
		PublicKey:  pubKey,
	}, nil
}

// PublicKey extracts the armored public half of an armored private key.
func PublicKey(privateKey string) (string, error) {
	key, err := crypto.NewKeyFromArmored(privateKey)
	if err != nil {
		return "", err
	}

	return key.GetArmoredPublicKey()
}
