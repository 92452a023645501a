package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"openboard-api/models"
	"openboard-api/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileFetcher struct {
	profile *OAuthProfile
	err     error
}

func (f *fakeProfileFetcher) Fetch(ctx context.Context, providerToken string) (*OAuthProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newAuthFixture(t *testing.T, fetcher ProfileFetcher) (AuthService, *fakeUserRepo, *token.Codec) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	codec, err := token.NewCodec(key, token.DefaultTTL)
	require.NoError(t, err)

	users := newFakeUserRepo()
	return NewAuthService(users, codec, fetcher), users, codec
}

func TestResolveTokenMissing(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)

	_, err := svc.ResolveToken("", true, time.Now())
	assert.True(t, models.IsCode(err, models.CodeRequiredPermission))

	user, err := svc.ResolveToken("", false, time.Now())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestResolveTokenExpired(t *testing.T) {
	svc, users, codec := newAuthFixture(t, nil)
	actor := userWithMembership(users, "alice", nil)

	issuedAt := time.Now()
	tok, _, err := codec.Issue(actor.ID, issuedAt)
	require.NoError(t, err)

	_, err = svc.ResolveToken(tok, true, issuedAt.Add(8*24*time.Hour))
	assert.True(t, models.IsCode(err, models.CodeExpiredPermission))
}

func TestResolveTokenGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)

	for _, tok := range []string{"nonsense", "a.b.c", "!!.!!.!!"} {
		_, err := svc.ResolveToken(tok, true, time.Now())
		assert.True(t, models.IsCode(err, models.CodeInvalidPermission), "token %q", tok)
	}
}

func TestResolveTokenDanglingSubject(t *testing.T) {
	svc, users, codec := newAuthFixture(t, nil)

	// Token for a user id that never existed.
	tok, _, err := codec.Issue(999, time.Now())
	require.NoError(t, err)
	_, err = svc.ResolveToken(tok, true, time.Now())
	assert.True(t, models.IsCode(err, models.CodeInvalidPermission))

	// Token whose subject was deleted after issuance.
	actor := userWithMembership(users, "bob", nil)
	tok, _, err = codec.Issue(actor.ID, time.Now())
	require.NoError(t, err)
	users.markDeleted(actor.ID)

	_, err = svc.ResolveToken(tok, true, time.Now())
	assert.True(t, models.IsCode(err, models.CodeInvalidPermission))
}

func TestResolveTokenLiveSubject(t *testing.T) {
	svc, users, codec := newAuthFixture(t, nil)
	actor := userWithMembership(users, "carol", nil)

	tok, _, err := codec.Issue(actor.ID, time.Now())
	require.NoError(t, err)

	resolved, err := svc.ResolveToken(tok, true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, actor.ID, resolved.ID)
	assert.Equal(t, "carol", resolved.Username)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)

	resp, err := svc.Register(models.RegisterRequest{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "dave", resp.User.Username)

	// Registering the same email again is rejected.
	_, err = svc.Register(models.RegisterRequest{
		Username: "dave2",
		Email:    "dave@example.com",
		Password: "hunter22",
	})
	assert.True(t, models.IsCode(err, models.CodeDuplicateAccount))

	// Login with the right and wrong password.
	loginResp, err := svc.Login(models.LoginRequest{Email: "dave@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, loginResp.User.ID)

	_, err = svc.Login(models.LoginRequest{Email: "dave@example.com", Password: "wrong"})
	assert.True(t, models.IsCode(err, models.CodeFailedAuthentication))

	_, err = svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.True(t, models.IsCode(err, models.CodeFailedAuthentication))
}

func TestLoginWithOAuth(t *testing.T) {
	fetcher := &fakeProfileFetcher{profile: &OAuthProfile{
		Subject:  "provider|123",
		Username: "eve",
		Email:    "eve@example.com",
	}}
	svc, users, _ := newAuthFixture(t, fetcher)

	resp, err := svc.LoginWithOAuth(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "eve", resp.User.Username)

	// Same subject resolves to the same account, not a new one.
	again, err := svc.LoginWithOAuth(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
	assert.Len(t, users.users, 1)
}

func TestLoginWithOAuthFetchFailure(t *testing.T) {
	fetcher := &fakeProfileFetcher{err: errors.New("provider unavailable")}
	svc, _, _ := newAuthFixture(t, fetcher)

	_, err := svc.LoginWithOAuth(context.Background(), "provider-token")
	assert.True(t, models.IsCode(err, models.CodeFailedAuthentication))
}
