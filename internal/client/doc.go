// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line runtime of the sync client.
//
// Every invocation runs one command against the local record store:
//
//	login <userId>            sign in through the remote store session endpoint
//	run                       keep the connectivity monitor and the sync job running
//	sync                      run one sync and print its report
//	add <entity> <json>       create a record
//	list [entity]             print records
//	edit <localId> <json>     replace the payload of a record
//	rm <localId>              delete a record
//	status                    print the signed-in owner and pending counts
//	logout                    purge local records and sign out
//	version                   print build metadata
package client
