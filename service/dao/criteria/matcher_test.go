package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/kernel/service/dao"
)

func TestFilterByState(t *testing.T) {
	testCases := []struct {
		description string
		state       string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", state: "running", expect: true},
		{description: "single match", state: "running", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterState, "running")}, expect: true},
		{description: "single mismatch", state: "exited", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterState, "running")}, expect: false},
		{description: "any of", state: "exited", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterState, "running", "exited")}, expect: true},
		{description: "other parameter ignored", state: "exited", parameters: []*dao.Parameter{dao.NewParameter("Name", "init")}, expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, FilterByState(testCase.state, testCase.parameters), testCase.description)
	}
}
