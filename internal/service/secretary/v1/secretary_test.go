package secretary

import (
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
)

type SecretaryTestSuite struct {
	suite.Suite
	secretary *Secretary
	config    *config.SecretConfig
}

func (suite *SecretaryTestSuite) SetupTest() {
	suite.config, _ = config.NewSecretConfig()
	suite.config.UserKey = "jds__63h3_7ds"
	suite.secretary, _ = NewSecretaryService(suite.config)
}

func TestSecretaryTestSuite(t *testing.T) {
	suite.Run(t, new(SecretaryTestSuite))
}

func (suite *SecretaryTestSuite) TestRoundTrip() {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "sample 1",
			data: "sample text string",
		},
		{
			name: "sample 2",
			data: "6ba7b810-9dad-11d1-80b4-00c04fd430c8|1750000000",
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			token := suite.secretary.Encode(tt.data)
			decoded, err := suite.secretary.Decode(token)
			assert.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func (suite *SecretaryTestSuite) TestEncodeNotDeterministic() {
	// a fresh nonce must produce distinct tokens for identical payloads
	assert.NotEqual(suite.T(), suite.secretary.Encode("payload"), suite.secretary.Encode("payload"))
}

func (suite *SecretaryTestSuite) TestDecodeFailures() {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "non-hex input",
			data: "non-hex-encoded-data",
		},
		{
			name: "truncated ciphertext",
			data: "d078ff",
		},
		{
			name: "tampered ciphertext",
			data: suite.secretary.Encode("payload") + "00",
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.secretary.Decode(tt.data)
			assert.Error(t, err)
			assert.Equal(t, "", res)
		})
	}
}

func (suite *SecretaryTestSuite) TestEncodePanicsOnEntropyFailure() {
	suite.secretary.entropy = iotest.ErrReader(errors.New("entropy source exhausted"))
	assert.Panics(suite.T(), func() {
		suite.secretary.Encode("payload")
	})
}

func (suite *SecretaryTestSuite) TestDecodeForeignKey() {
	other, _ := NewSecretaryService(&config.SecretConfig{UserKey: "other_key"})
	token := other.Encode("payload")
	_, err := suite.secretary.Decode(token)
	assert.Error(suite.T(), err)
}
