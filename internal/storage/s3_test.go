package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string]string
	input   *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = in
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestGetFile(t *testing.T) {
	g := &fakeGetter{objects: map[string]string{"seed/demo.yaml": "budgets: []"}}

	data, err := GetFile(context.Background(), g, "intel", "seed/demo.yaml")
	require.NoError(t, err)
	assert.Equal(t, "budgets: []", string(data))
	assert.Equal(t, "intel", aws.ToString(g.input.Bucket))

	_, err = GetFile(context.Background(), g, "intel", "missing")
	assert.ErrorContains(t, err, "failed to get file from S3")
}
