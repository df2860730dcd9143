package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidWalletAddress reports whether the string is a valid EVM address
func IsValidWalletAddress(address string) bool {
	return common.IsHexAddress(address)
}

// NormalizeWalletAddress returns the checksummed form of an EVM address
func NormalizeWalletAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// ShortenWalletAddress formats an address as 0x1234...abcd for display
func ShortenWalletAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// IsZeroAddress reports whether the address is the zero address
func IsZeroAddress(address string) bool {
	return strings.EqualFold(address, common.Address{}.Hex())
}
