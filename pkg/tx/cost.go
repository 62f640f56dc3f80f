package tx

import "math/big"

// MaxCost computes the worst-case cost of executing a record:
// totalCost = gasPrice * gasLimit, the fee burned if every unit of gas
// is consumed, and minBalance = value + totalCost, the smallest account
// balance that can fund the transaction at all.
func MaxCost(r *Record) (totalCost, minBalance *big.Int) {
	totalCost = new(big.Int).Mul(orZero(r.GasPrice), orZero(r.GasLimit))
	minBalance = new(big.Int).Add(orZero(r.Value), totalCost)
	return totalCost, minBalance
}
