/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketUnmarshal(t *testing.T) {
	var tickets []Ticket

	payload := `[
		{"number":"INC0010001","short_description":"Printer offline","priority":"4 - Low","sys_created_on":"2025-06-02 09:30:00"},
		{"number":10002,"short_description":"Uplink down"}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &tickets))
	require.Len(t, tickets, 2)

	assert.False(t, tickets[0].Malformed)
	assert.True(t, tickets[0].CreatedOn.Equal(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)))
	assert.True(t, tickets[1].Malformed)
	assert.Equal(t, "Uplink down", tickets[1].ShortDescription)
}
