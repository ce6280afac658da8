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


package db

import "errors"

var (

	// Connection setup.

	ErrCNPGConfigRequired = errors.New("cnpg config is required")
	ErrCNPGTLSDisabled    = errors.New("cnpg tls is configured but sslmode is disable")
	ErrCNPGInvalidCA      = errors.New("cnpg tls: unable to append CA certificate")

	// Operation errors.

	ErrFailedToScan  = errors.New("failed to scan")
	ErrFailedToQuery = errors.New("failed to query")

	// Validation.

	ErrDeviceIDRequired = errors.New("device id is required")
	ErrQuerierRequired  = errors.New("cnpg querier is required")
)
