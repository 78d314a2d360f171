// Package articles turns backlog topics into finished article records. The
// selector walks the topic backlog (falling back to AI-synthesized topic
// variations once it is exhausted) and the assembler drives one generation
// call per article, then derives all the publishing metadata from the
// returned HTML.
package articles
