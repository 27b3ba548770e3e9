package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/launcher-core/internal/logging"
	portmocks "github.com/bnema/launcher-core/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secretKey = "Credentials"

func newTestStore(t *testing.T, opts ...Option) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	return NewStore(primary, fallback, opts...), primary, fallback
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, secretKey).Return("from-keyring", nil).Once()

	value, err := store.Get(context.Background(), secretKey)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, secretKey).Return("", errors.New("secret service unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, secretKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), secretKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetFallsBackWhenPrimaryValueIsInvalid(t *testing.T) {
	t.Parallel()

	validate := func(value string) error {
		if len(value) != 4 {
			return errors.New("wrong length")
		}
		return nil
	}
	store, primary, fallback := newTestStore(t, WithValidator(validate))
	primary.EXPECT().Get(mock.Anything, secretKey).Return("short", nil).Once()
	fallback.EXPECT().Get(mock.Anything, secretKey).Return("good", nil).Once()

	value, err := store.Get(context.Background(), secretKey)
	require.NoError(t, err)
	assert.Equal(t, "good", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, secretKey).Return("", errors.New("keyring failed")).Once()
	fallback.EXPECT().Get(mock.Anything, secretKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), secretKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "keyring failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, secretKey, "secret").Return(errors.New("keyring failed")).Once()
	fallback.EXPECT().Put(mock.Anything, secretKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), secretKey, "secret"))
}

func TestStorePutRemovesFallbackCopyWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, secretKey, "secret").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, secretKey).Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), secretKey, "secret"))
}

func TestStorePutIgnoresFallbackCleanupFailure(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, secretKey, "secret").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, secretKey).Return(errors.New("read-only filesystem")).Once()

	require.NoError(t, store.Put(context.Background(), secretKey, "secret"))
}

func TestStorePutReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, secretKey, "secret").Return(errors.New("keyring failed")).Once()
	fallback.EXPECT().Put(mock.Anything, secretKey, "secret").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), secretKey, "secret")
	require.Error(t, err)
	assert.ErrorContains(t, err, "keyring failed")
	assert.ErrorContains(t, err, "disk full")
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, secretKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, secretKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), secretKey))
}

func TestStoreDeleteReportsPrimaryFailure(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, secretKey).Return(errors.New("keyring locked")).Once()
	fallback.EXPECT().Delete(mock.Anything, secretKey).Return(nil).Once()

	err := store.Delete(context.Background(), secretKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "keyring locked")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, secretKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), secretKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
