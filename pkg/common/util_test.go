package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 21.57, Round2(21.5678))
	assert.Equal(t, 1013.0, Round2(1012.999))
	assert.Equal(t, -3.14, Round2(-3.141))
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("IOT_TEST_ENV_KEY", "  value ")
	assert.Equal(t, "value", GetEnvOrDefault("IOT_TEST_ENV_KEY", "fallback"))

	t.Setenv("IOT_TEST_ENV_KEY", "   ")
	assert.Equal(t, "fallback", GetEnvOrDefault("IOT_TEST_ENV_KEY", "fallback"))

	assert.Equal(t, "fallback", GetEnvOrDefault("IOT_TEST_ENV_KEY_NOT_SET", "fallback"))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("IOT_TEST_BOOL", "false")
	assert.False(t, GetEnvBool("IOT_TEST_BOOL", true))

	t.Setenv("IOT_TEST_BOOL", "not-a-bool")
	assert.True(t, GetEnvBool("IOT_TEST_BOOL", true))

	assert.True(t, GetEnvBool("IOT_TEST_BOOL_NOT_SET", true))
}

func TestMapperReducer(t *testing.T) {
	doubled := Mapper([]int{1, 2, 3}, func(i int) int { return i * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	sum := Reducer(doubled, func(acc int, i int) int { return acc + i }, 0)
	assert.Equal(t, 12, sum)
}
