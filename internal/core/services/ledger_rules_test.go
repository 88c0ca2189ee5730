package services

import (
	"testing"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSpendingRules_Check(t *testing.T) {
	tests := []struct {
		name       string
		cumulative bool
		account    domain.Account
		amount     int64
		want       apperrors.Violation
	}{
		{
			name:    "insufficient funds wins over operation limit",
			account: domain.Account{ID: 1, Balance: 100, DailyLimit: 500, OperationLimit: 250},
			amount:  150,
			want:    apperrors.ViolationInsufficientFunds,
		},
		{
			name:    "daily limit checked before operation limit",
			account: domain.Account{ID: 1, Balance: 5000, DailyLimit: 500, OperationLimit: 250},
			amount:  600,
			want:    apperrors.ViolationDailyLimit,
		},
		{
			name:    "operation limit",
			account: domain.Account{ID: 1, Balance: 1500, DailyLimit: 500, OperationLimit: 250},
			amount:  260,
			want:    apperrors.ViolationOperationLimit,
		},
		{
			name:    "whole balance can be spent",
			account: domain.Account{ID: 1, Balance: 200, DailyLimit: 500, OperationLimit: 250},
			amount:  200,
			want:    apperrors.ViolationNone,
		},
		{
			name:    "per-operation daily limit ignores earlier spend",
			account: domain.Account{ID: 1, Balance: 1000, DailySpend: 450, DailyLimit: 500, OperationLimit: 250},
			amount:  100,
			want:    apperrors.ViolationNone,
		},
		{
			name:       "cumulative daily limit counts earlier spend",
			cumulative: true,
			account:    domain.Account{ID: 1, Balance: 1000, DailySpend: 450, DailyLimit: 500, OperationLimit: 250},
			amount:     100,
			want:       apperrors.ViolationDailyLimit,
		},
		{
			name:       "cumulative daily limit allows reaching the limit exactly",
			cumulative: true,
			account:    domain.Account{ID: 1, Balance: 1000, DailySpend: 400, DailyLimit: 500, OperationLimit: 250},
			amount:     100,
			want:       apperrors.ViolationNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := tt.account
			err := SpendingRules{CumulativeDailyLimit: tt.cumulative}.Check(&account, tt.amount)
			assert.Equal(t, tt.want, apperrors.ViolationOf(err))
			if tt.want == apperrors.ViolationNone {
				assert.NoError(t, err)
			}
		})
	}
}
