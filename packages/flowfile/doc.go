// Package flowfile parses declarative YAML flow files into flowspec
// cases.
//
// A flow file holds cases; each case has setup steps (static values or
// requests with captures) followed by tests (a single suite, or a
// parameterized suite over variants). Expectations are an ordered list of
// single-key maps, applied in file order:
//
//	cases:
//	  - name: user flows
//	    setup:
//	      - name: login
//	        request: {method: POST, url: "{{$BASE_URL}}/login", body: '{"user":"u"}'}
//	        capture: {token: body.token}
//	    tests:
//	      - name: profile
//	        request: {method: GET, url: "{{$BASE_URL}}/me", headers: {Authorization: "Bearer {{token}}"}}
//	        expect:
//	          - status: 200
//	          - body.email: "u@example.com"
package flowfile
