// Command recdex serves and maintains the record search service.
package main

func main() {
	Execute()
}
