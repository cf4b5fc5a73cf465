// Package vault persists the account list as an encrypted blob and gates
// access behind a locally verified master password.
package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// The accounts file is encrypted with a hard-coded key, not one derived from
// the master password. Inherited behavior; the master password only gates
// the UI. See DESIGN.md.
const (
	fixedSecretKey = "MySecretKey12345" // 16 bytes for AES-128
	fixedIV        = "MyInitVector1234" // 16 bytes IV

	pbkdf2Iterations = 1000
	pbkdf2KeyLen     = 16
)

// Encrypt encrypts text with the fixed key (AES-128-CBC, PKCS#7 padding)
// and returns the ciphertext base64-encoded.
func Encrypt(text string) (string, error) {
	return encryptCBC([]byte(text), []byte(fixedSecretKey))
}

// Decrypt reverses Encrypt.
func Decrypt(encryptedText string) (string, error) {
	return decryptCBC(encryptedText, []byte(fixedSecretKey))
}

// EncryptWithPassword derives the key from password via PBKDF2 instead of
// using the fixed key. The fixed key string doubles as the derivation salt.
func EncryptWithPassword(text, password string) (string, error) {
	key := pbkdf2.Key([]byte(password), []byte(fixedSecretKey), pbkdf2Iterations, pbkdf2KeyLen, sha1.New)
	return encryptCBC([]byte(text), key)
}

// DecryptWithPassword reverses EncryptWithPassword.
func DecryptWithPassword(encryptedText, password string) (string, error) {
	key := pbkdf2.Key([]byte(password), []byte(fixedSecretKey), pbkdf2Iterations, pbkdf2KeyLen, sha1.New)
	return decryptCBC(encryptedText, key)
}

func encryptCBC(plaintext, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(fixedIV)).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func decryptCBC(encoded string, key []byte) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext is not a multiple of the block size")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(fixedIV)).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

// HashPassword returns the hex SHA-256 of password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// GenerateSalt returns 16 random bytes hex-encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPasswordWithSalt returns the hex SHA-256 of password+salt.
func HashPasswordWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
